package driver

import (
	"fmt"
	"os"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/lexer"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// TokenizeResult holds the token stream for one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single file without parsing or running rules.
func Tokenize(path string, maxDiagnostics int) (TokenizeResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = 1000
	}
	baseDir, _ := os.Getwd()
	fileSet := source.NewFileSetWithBase(baseDir)
	id, err := fileSet.Load(path)
	if err != nil {
		return TokenizeResult{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	bag.Sort()
	return TokenizeResult{FileSet: fileSet, FileID: id, Tokens: tokens, Bag: bag}, nil
}
