package screening

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

var (
	candidateProfileSchema = mustCompileSchema("schemas/candidate_profile.schema.json")
	matchScoreSchema       = mustCompileSchema("schemas/match_score.schema.json")
)

func mustCompileSchema(path string) *gojsonschema.Schema {
	data, err := schemaFiles.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("failed to read embedded schema %s: %v", path, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema %s: %v", path, err))
	}
	return schema
}

// validateShape checks a decoded reply against a schema and reports the
// first violation by field path.
func validateShape(schema *gojsonschema.Schema, doc []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ShapeError{Message: err.Error()}
	}
	if result.Valid() {
		return nil
	}
	first := result.Errors()[0]
	return &ShapeError{Field: first.Field(), Message: first.Description()}
}
