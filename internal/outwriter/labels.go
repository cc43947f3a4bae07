package outwriter

import "github.com/qlinetech/qgit/schema"

// Labels holds the human-readable strings used by Markdown and console reports.
type Labels struct {
	RepoInfo        string
	FolderStructure string
	Timeline        string
	Contributors    string
	Languages       string
	Frameworks      string
	FullReport      string
	CommitHistory   string

	Metric       string
	Value        string
	Name         string
	Head         string
	TotalFiles   string
	TotalLines   string
	TotalCommits string
	Authors      string
	CreatedAt    string
	UpdatedAt    string

	Path     string
	Lines    string
	Commits  string
	Date     string
	Author   string
	Message  string
	Changes  string
	Added    string
	Removed  string
	Net      string
	Language string
	Share    string
	Total    string
	Repo     string

	Framework    string
	Marker       string
	NoFrameworks string

	// Signature is a format string taking the generation timestamp.
	Signature string
}

var labelTables = map[schema.LabelLang]Labels{
	schema.LangEN: {
		RepoInfo:        "Repository Information",
		FolderStructure: "Folder Structure",
		Timeline:        "Development Timeline",
		Contributors:    "Contributors",
		Languages:       "Languages",
		Frameworks:      "Frameworks",
		FullReport:      "Full Repository Report",
		CommitHistory:   "Commit History",
		Metric:          "Metric",
		Value:           "Value",
		Name:            "Name",
		Head:            "HEAD",
		TotalFiles:      "Total Files",
		TotalLines:      "Total Lines of Code",
		TotalCommits:    "Total Commits",
		Authors:         "Contributors",
		CreatedAt:       "Creation Date",
		UpdatedAt:       "Last Update",
		Path:            "Path",
		Lines:           "Lines",
		Commits:         "Commits",
		Date:            "Date",
		Author:          "Author",
		Message:         "Message",
		Changes:         "Changes",
		Added:           "Added",
		Removed:         "Removed",
		Net:             "Net",
		Language:        "Language",
		Share:           "Percentage",
		Total:           "Total",
		Repo:            "Repository",
		Framework:       "Framework",
		Marker:          "Marker File",
		NoFrameworks:    "No frameworks detected.",
		Signature:       "Generated with qgit on %s",
	},
	schema.LangTR: {
		RepoInfo:        "Depo Bilgileri",
		FolderStructure: "Klasör Yapısı",
		Timeline:        "Geliştirme Zaman Çizelgesi",
		Contributors:    "Katkıda Bulunanlar",
		Languages:       "Diller",
		Frameworks:      "Çatılar",
		FullReport:      "Tam Depo Raporu",
		CommitHistory:   "Commit Geçmişi",
		Metric:          "Ölçüt",
		Value:           "Değer",
		Name:            "Ad",
		Head:            "HEAD",
		TotalFiles:      "Toplam Dosya",
		TotalLines:      "Toplam Kod Satırı",
		TotalCommits:    "Toplam Commit",
		Authors:         "Katkıda Bulunanlar",
		CreatedAt:       "Oluşturulma Tarihi",
		UpdatedAt:       "Son Güncelleme",
		Path:            "Yol",
		Lines:           "Satır",
		Commits:         "Commit",
		Date:            "Tarih",
		Author:          "Yazar",
		Message:         "Mesaj",
		Changes:         "Değişiklikler",
		Added:           "Eklenen",
		Removed:         "Silinen",
		Net:             "Net",
		Language:        "Dil",
		Share:           "Yüzde",
		Total:           "Toplam",
		Repo:            "Depo",
		Framework:       "Çatı",
		Marker:          "İşaret Dosyası",
		NoFrameworks:    "Çatı tespit edilmedi.",
		Signature:       "qgit ile %s tarihinde oluşturuldu",
	},
	schema.LangIT: {
		RepoInfo:        "Informazioni sul Repository",
		FolderStructure: "Struttura delle Cartelle",
		Timeline:        "Cronologia dello Sviluppo",
		Contributors:    "Contributori",
		Languages:       "Linguaggi",
		Frameworks:      "Framework",
		FullReport:      "Report Completo del Repository",
		CommitHistory:   "Cronologia dei Commit",
		Metric:          "Metrica",
		Value:           "Valore",
		Name:            "Nome",
		Head:            "HEAD",
		TotalFiles:      "File Totali",
		TotalLines:      "Righe di Codice Totali",
		TotalCommits:    "Commit Totali",
		Authors:         "Contributori",
		CreatedAt:       "Data di Creazione",
		UpdatedAt:       "Ultimo Aggiornamento",
		Path:            "Percorso",
		Lines:           "Righe",
		Commits:         "Commit",
		Date:            "Data",
		Author:          "Autore",
		Message:         "Messaggio",
		Changes:         "Modifiche",
		Added:           "Aggiunte",
		Removed:         "Rimosse",
		Net:             "Netto",
		Language:        "Linguaggio",
		Share:           "Percentuale",
		Total:           "Totale",
		Repo:            "Repository",
		Framework:       "Framework",
		Marker:          "File Indicatore",
		NoFrameworks:    "Nessun framework rilevato.",
		Signature:       "Generato con qgit il %s",
	},
	schema.LangFR: {
		RepoInfo:        "Informations sur le Dépôt",
		FolderStructure: "Structure des Dossiers",
		Timeline:        "Chronologie du Développement",
		Contributors:    "Contributeurs",
		Languages:       "Langages",
		Frameworks:      "Frameworks",
		FullReport:      "Rapport Complet du Dépôt",
		CommitHistory:   "Historique des Commits",
		Metric:          "Métrique",
		Value:           "Valeur",
		Name:            "Nom",
		Head:            "HEAD",
		TotalFiles:      "Fichiers Totaux",
		TotalLines:      "Lignes de Code Totales",
		TotalCommits:    "Commits Totaux",
		Authors:         "Contributeurs",
		CreatedAt:       "Date de Création",
		UpdatedAt:       "Dernière Mise à Jour",
		Path:            "Chemin",
		Lines:           "Lignes",
		Commits:         "Commits",
		Date:            "Date",
		Author:          "Auteur",
		Message:         "Message",
		Changes:         "Modifications",
		Added:           "Ajoutées",
		Removed:         "Supprimées",
		Net:             "Net",
		Language:        "Langage",
		Share:           "Pourcentage",
		Total:           "Total",
		Repo:            "Dépôt",
		Framework:       "Framework",
		Marker:          "Fichier Marqueur",
		NoFrameworks:    "Aucun framework détecté.",
		Signature:       "Généré avec qgit le %s",
	},
	schema.LangES: {
		RepoInfo:        "Información del Repositorio",
		FolderStructure: "Estructura de Carpetas",
		Timeline:        "Cronología del Desarrollo",
		Contributors:    "Colaboradores",
		Languages:       "Lenguajes",
		Frameworks:      "Frameworks",
		FullReport:      "Informe Completo del Repositorio",
		CommitHistory:   "Historial de Commits",
		Metric:          "Métrica",
		Value:           "Valor",
		Name:            "Nombre",
		Head:            "HEAD",
		TotalFiles:      "Archivos Totales",
		TotalLines:      "Líneas de Código Totales",
		TotalCommits:    "Commits Totales",
		Authors:         "Colaboradores",
		CreatedAt:       "Fecha de Creación",
		UpdatedAt:       "Última Actualización",
		Path:            "Ruta",
		Lines:           "Líneas",
		Commits:         "Commits",
		Date:            "Fecha",
		Author:          "Autor",
		Message:         "Mensaje",
		Changes:         "Cambios",
		Added:           "Añadidas",
		Removed:         "Eliminadas",
		Net:             "Neto",
		Language:        "Lenguaje",
		Share:           "Porcentaje",
		Total:           "Total",
		Repo:            "Repositorio",
		Framework:       "Framework",
		Marker:          "Archivo Marcador",
		NoFrameworks:    "No se detectaron frameworks.",
		Signature:       "Generado con qgit el %s",
	},
	schema.LangDE: {
		RepoInfo:        "Repository-Informationen",
		FolderStructure: "Ordnerstruktur",
		Timeline:        "Entwicklungszeitleiste",
		Contributors:    "Mitwirkende",
		Languages:       "Sprachen",
		Frameworks:      "Frameworks",
		FullReport:      "Vollständiger Repository-Bericht",
		CommitHistory:   "Commit-Verlauf",
		Metric:          "Kennzahl",
		Value:           "Wert",
		Name:            "Name",
		Head:            "HEAD",
		TotalFiles:      "Dateien gesamt",
		TotalLines:      "Codezeilen gesamt",
		TotalCommits:    "Commits gesamt",
		Authors:         "Mitwirkende",
		CreatedAt:       "Erstellungsdatum",
		UpdatedAt:       "Letzte Aktualisierung",
		Path:            "Pfad",
		Lines:           "Zeilen",
		Commits:         "Commits",
		Date:            "Datum",
		Author:          "Autor",
		Message:         "Nachricht",
		Changes:         "Änderungen",
		Added:           "Hinzugefügt",
		Removed:         "Entfernt",
		Net:             "Netto",
		Language:        "Sprache",
		Share:           "Anteil",
		Total:           "Gesamt",
		Repo:            "Repository",
		Framework:       "Framework",
		Marker:          "Markierungsdatei",
		NoFrameworks:    "Keine Frameworks erkannt.",
		Signature:       "Erstellt mit qgit am %s",
	},
}

// LabelsFor returns the label table for lang, falling back to English.
func LabelsFor(lang schema.LabelLang) Labels {
	if l, ok := labelTables[lang]; ok {
		return l
	}
	return labelTables[schema.LangEN]
}
