// Package patch applies partial-update documents to update DTOs. Two
// document kinds are accepted: RFC 6902 JSON Patch (the default) and RFC 7396
// JSON Merge Patch (Content-Type application/merge-patch+json).
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ecomweb/catalog-api/app/api"
)

const MergePatchContentType = "application/merge-patch+json"

// idField is the identity field of every update DTO.
const idField = "Id"

var (
	// ErrEmptyDocument is returned by Parse for an empty or null body.
	ErrEmptyDocument = errors.New("patch document is empty")
	// ErrInvalidDocument is returned by Parse when the body is not a
	// well-formed document of the selected kind.
	ErrInvalidDocument = errors.New("invalid patch document")
)

const jsonPatchSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["op", "path"],
    "properties": {
      "op":   {"enum": ["add", "remove", "replace", "move", "copy", "test"]},
      "path": {"type": "string"},
      "from": {"type": "string"}
    },
    "allOf": [
      {
        "if":   {"properties": {"op": {"enum": ["add", "replace", "test"]}}},
        "then": {"required": ["value"]}
      },
      {
        "if":   {"properties": {"op": {"enum": ["move", "copy"]}}},
        "then": {"required": ["from"]}
      }
    ]
  }
}`

var schema = jsonschema.MustCompileString("urn:catalog-api:json-patch", jsonPatchSchema)

// Document is a parsed partial-update document.
type Document struct {
	merge bool
	ops   []map[string]any
	raw   []byte
}

// Parse reads body as the document kind selected by contentType.
func Parse(contentType string, body []byte) (*Document, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, ErrEmptyDocument
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == MergePatchContentType {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("%w: merge patch must be a JSON object", ErrInvalidDocument)
		}
		return &Document{merge: true, raw: body}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	// Schema errors name schema locations; callers only get a fixed message.
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: document does not match the JSON Patch schema", ErrInvalidDocument)
	}

	var ops []map[string]any
	dec = json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&ops); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &Document{ops: ops, raw: body}, nil
}

// Apply applies doc to target. Problems are recorded in ms and leave target
// unchanged: failed operations under api.KeyPatchError, a changed Id under
// "Id". The resulting value is not validated here.
func Apply[T any](doc *Document, target *T, ms api.ModelState) {
	original, err := json.Marshal(target)
	if err != nil {
		ms.AddError(api.KeyPatchError, err.Error())
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(original, &fields); err != nil {
		ms.AddError(api.KeyPatchError, err.Error())
		return
	}

	var patched []byte
	if doc.merge {
		patched, err = jsonpatch.MergePatch(original, doc.raw)
	} else {
		patched, err = applyOps(doc.ops, fields, original)
	}
	if err != nil {
		ms.AddError(api.KeyPatchError, err.Error())
		return
	}

	var after map[string]json.RawMessage
	if err := json.Unmarshal(patched, &after); err != nil {
		ms.AddError(api.KeyPatchError, err.Error())
		return
	}
	if !bytes.Equal(fields[idField], after[idField]) {
		ms.AddError(idField, "The Id field cannot be changed.")
		return
	}

	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	var out T
	if err := dec.Decode(&out); err != nil {
		ms.AddError(api.KeyPatchError, err.Error())
		return
	}
	*target = out
}

func applyOps(ops []map[string]any, fields map[string]json.RawMessage, original []byte) ([]byte, error) {
	for _, op := range ops {
		for _, key := range []string{"path", "from"} {
			if p, ok := op[key].(string); ok {
				op[key] = canonicalPath(p, fields)
			}
		}
	}
	normalized, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.DecodePatch(normalized)
	if err != nil {
		return nil, err
	}
	return p.Apply(original)
}

// canonicalPath rewrites the first segment of a JSON pointer to the field
// name it matches case-insensitively, so "/displayOrder" targets
// "DisplayOrder".
func canonicalPath(path string, fields map[string]json.RawMessage) string {
	if !strings.HasPrefix(path, "/") {
		return path
	}
	head, rest, _ := strings.Cut(path[1:], "/")
	if _, ok := fields[head]; ok {
		return path
	}
	for name := range fields {
		if strings.EqualFold(name, head) {
			if rest != "" {
				return "/" + name + "/" + rest
			}
			return "/" + name
		}
	}
	return path
}
