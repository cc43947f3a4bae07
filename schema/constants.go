package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// GitBackend represents the implementation used to read repository data.
	GitBackend string

	// LabelLang represents the human language used for report labels.
	LabelLang string
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	MarkdownOut OutputMode = "markdown"
	JSONOut     OutputMode = "json"
	CSVOut      OutputMode = "csv"
	ParquetOut  OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All git backends supported.
const (
	ExecGitBackend  GitBackend = "exec" // default
	GoGitGitBackend GitBackend = "gogit"
)

// All label languages supported.
const (
	LangEN LabelLang = "en" // default
	LangTR LabelLang = "tr"
	LangIT LabelLang = "it"
	LangFR LabelLang = "fr"
	LangES LabelLang = "es"
	LangDE LabelLang = "de"
)

// UnknownLanguage is the label used for files whose extension is not recognized.
const UnknownLanguage = "Unknown"

// DateLayout is the commit timestamp layout. Lexicographic order equals chronological order.
const DateLayout = "2006-01-02 15:04:05"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	MarkdownOut: {},
	JSONOut:     {},
	CSVOut:      {},
	ParquetOut:  {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidGitBackends lists all valid git backends.
var ValidGitBackends = map[GitBackend]struct{}{
	ExecGitBackend:  {},
	GoGitGitBackend: {},
}

// ValidLabelLangs lists all valid label languages.
var ValidLabelLangs = map[LabelLang]struct{}{
	LangEN: {},
	LangTR: {},
	LangIT: {},
	LangFR: {},
	LangES: {},
	LangDE: {},
}
