package practicesession

import "github.com/fsp-trainer/backend/internal/domain/folder"

// FolderRegular selects the interleaved regular queue instead of a single folder.
const FolderRegular folder.ID = "regular"

// Filter selects which cards a queue is built from.
type Filter struct {
	Category string    // "" or card.AllCategories = every category
	Folder   folder.ID // "" or FolderRegular = regular queue
	Limit    int       // 0 = no limit
}

// DefaultFilter returns the regular queue over all categories.
func DefaultFilter() Filter {
	return Filter{
		Category: "",
		Folder:   FolderRegular,
		Limit:    0,
	}
}

// IsRegular reports whether the filter asks for the regular queue.
func (f Filter) IsRegular() bool {
	return f.Folder == "" || f.Folder == FolderRegular
}
