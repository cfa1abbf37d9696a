package templates

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govbridge/tdabot/pkg/domain/model"
	"github.com/govbridge/tdabot/pkg/domain/types"
)

// Renderer loads message templates from a directory and performs
// placeholder substitution. Templates are flat files named <name>.json
// containing literal content with %TOKEN% markers. The renderer is
// format-agnostic: it returns raw text and leaves interpretation (Block
// Kit JSON in practice) to the caller.
type Renderer struct {
	dir string
}

// New creates a Renderer reading templates from dir
func New(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render reads the named template and applies vars in order. Only the
// first occurrence of each token is replaced; a repeated token stays
// literal after its first hit. Templates are re-read per call, no cache.
func (r *Renderer) Render(name string, vars []model.TemplateVar) (string, error) {
	path := filepath.Join(r.dir, name+".json")

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", goerr.Wrap(err, "template not found",
				goerr.T(types.ErrTagTemplateNotFound),
				goerr.V("template", name))
		}
		return "", goerr.Wrap(err, "failed to read template", goerr.V("template", name))
	}

	content := string(raw)
	for _, v := range vars {
		content = strings.Replace(content, v.Token, v.Value, 1)
	}

	return content, nil
}
