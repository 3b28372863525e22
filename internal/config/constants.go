package config

const (
	// DefaultDatabasePath is where the SQLite file lives unless overridden.
	DefaultDatabasePath = "./library.db"

	// DefaultCatalogURL is the Scopus search endpoint used for index-page
	// enrichment.
	DefaultCatalogURL = "https://api.elsevier.com/content/search/scopus"

	// DefaultCatalogQuery matches everything; the catalog call takes no
	// user-supplied parameters.
	DefaultCatalogQuery = "ALL(*)"
)
