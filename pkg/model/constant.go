package model

// TCGA project codes and their full names, used for legends and summaries.
// Cancer types found in the data but absent here are shown by code only.
var (
	CANCER_TYPE_NAME map[string]string = map[string]string{
		"ACC":  "Adrenocortical carcinoma",
		"BLCA": "Bladder Urothelial Carcinoma",
		"BRCA": "Breast invasive carcinoma",
		"CESC": "Cervical squamous cell carcinoma and endocervical adenocarcinoma",
		"CHOL": "Cholangiocarcinoma",
		"COAD": "Colon adenocarcinoma",
		"DLBC": "Lymphoid Neoplasm Diffuse Large B-cell Lymphoma",
		"ESCA": "Esophageal carcinoma",
		"GBM":  "Glioblastoma multiforme",
		"LGG":  "Brain Lower Grade Glioma",
		"HNSC": "Head and Neck squamous cell carcinoma",
		"KICH": "Kidney Chromophobe",
		"KIRC": "Kidney renal clear cell carcinoma",
		"KIRP": "Kidney renal papillary cell carcinoma",
		"LAML": "Acute Myeloid Leukemia",
		"LIHC": "Liver hepatocellular carcinoma",
		"LUAD": "Lung adenocarcinoma",
		"LUSC": "Lung squamous cell carcinoma",
		"MESO": "Mesothelioma",
		"OV":   "Ovarian serous cystadenocarcinoma",
		"PAAD": "Pancreatic adenocarcinoma",
		"PCPG": "Pheochromocytoma and Paraganglioma",
		"PRAD": "Prostate adenocarcinoma",
		"READ": "Rectum adenocarcinoma",
		"SARC": "Sarcoma",
		"SKCM": "Skin Cutaneous Melanoma",
		"STAD": "Stomach adenocarcinoma",
		"THCA": "Thyroid carcinoma",
		"THYM": "Thymoma",
		"TGCT": "Testicular Germ Cell Tumors",
		"UCEC": "Uterine Corpus Endometrial Carcinoma",
		"UCS":  "Uterine Carcinosarcoma",
		"UVM":  "Uveal Melanoma",
	}
)

// CancerTypeName returns the full name for a project code, or the code.
func CancerTypeName(code string) string {
	if name, ok := CANCER_TYPE_NAME[code]; ok {
		return name
	}
	return code
}
