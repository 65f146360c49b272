package graph

// RawCodeItem is a function, method, class or type pulled from a source file
// before any aggregation. Purity classification and id assignment happen
// later, once the owning component is known.
type RawCodeItem struct {
	Name       string
	Kind       string // function, method, class, type
	Line       int
	Signature  string
	Doc        string
	ReturnType string
	IsAsync    bool
	IsExported bool
	Body       string
}

// FileExtraction is the per-file record the aggregator consumes: raw comment
// blocks for the tag parser, code items, and structural component references
// (for example capitalized JSX element names). Records are immutable once
// produced, so per-file extraction can run in parallel.
type FileExtraction struct {
	Path          string
	CommentBlocks []string
	CodeItems     []RawCodeItem
	References    []string
	// ParseError carries an upstream syntax failure; the file's record still
	// flows through so the run can report it without aborting.
	ParseError string
}

// AddCommentBlock records a raw comment block for tag extraction.
func (f *FileExtraction) AddCommentBlock(block string) {
	if block == "" {
		return
	}
	f.CommentBlocks = append(f.CommentBlocks, block)
}

// AddCodeItem appends an extracted code item.
func (f *FileExtraction) AddCodeItem(item RawCodeItem) {
	f.CodeItems = append(f.CodeItems, item)
}
