package driver

import (
	"fmt"

	"cvlint/internal/diag"
	"cvlint/internal/lexer"
	"cvlint/internal/source"
	"cvlint/internal/token"
)

// TokenizeResult carries the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and scans it to EOF, collecting lexical diagnostics.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = 256
	}
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(fileSet.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	tokens := lx.Tokens()
	bag.Sort()
	return &TokenizeResult{
		FileSet: fileSet,
		FileID:  fileID,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
