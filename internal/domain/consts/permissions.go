package consts

// Recommended permissions for different types of files and directories tubetag might create.
const (
	// ** World Readable **
	PermsGenericDir = 0o755

	PermsCoverFile = 0o644
	PermsLogFile   = 0o644

	// ** Private **
	PermsHomeProgDir = 0o750
)
