package domain

// ArtifactKind identifies one of the exported report artifacts.
type ArtifactKind int

const (
	ArtifactSummaryPDF ArtifactKind = iota
	ArtifactDetailedPDF
	ArtifactDetailedCSV
	ArtifactInvoiceXLSX
)

// BaseName is the artifact's name stem inside the period directory.
func (k ArtifactKind) BaseName() string {
	switch k {
	case ArtifactSummaryPDF:
		return "summary_report"
	case ArtifactDetailedPDF, ArtifactDetailedCSV:
		return "time_entries"
	case ArtifactInvoiceXLSX:
		return "invoice"
	default:
		return "report"
	}
}

// Ext is the artifact's file extension, dot included.
func (k ArtifactKind) Ext() string {
	switch k {
	case ArtifactSummaryPDF, ArtifactDetailedPDF:
		return ".pdf"
	case ArtifactDetailedCSV:
		return ".csv"
	case ArtifactInvoiceXLSX:
		return ".xlsx"
	default:
		return ""
	}
}

func (k ArtifactKind) String() string {
	switch k {
	case ArtifactSummaryPDF:
		return "summary_pdf"
	case ArtifactDetailedPDF:
		return "detailed_pdf"
	case ArtifactDetailedCSV:
		return "detailed_csv"
	case ArtifactInvoiceXLSX:
		return "invoice_xlsx"
	default:
		return "unknown"
	}
}
