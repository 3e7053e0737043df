package dto

type ImporterInfo struct {
	Name        string
	Version     string
	Description string
	Enabled     bool
	Binary      string
}

type CheckResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

type RunInput struct {
	ImporterName string
	Query        string
	Limit        int
}

type ImportedItemInfo struct {
	ID             string
	Name           string
	Slug           string
	DefaultMinutes int
}

type RunOutput struct {
	ImporterName string
	Items        []ImportedItemInfo
	Skipped      int
}
