package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/talent-match/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"candidate_profile.schema.json",
	"candidates.schema.json",
	"job_requirement.schema.json",
	"match_result.schema.json",
	"shortlist.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]

			assert.True(t, hasType && hasSchema,
				"schema should declare both type and $schema")
		})
	}
}

func TestCandidateProfileSchema_AcceptsValidProfile(t *testing.T) {
	schemaData, err := os.ReadFile("candidate_profile.schema.json")
	require.NoError(t, err)

	validProfile := `{
		"name": "Alice",
		"email": "alice@example.com",
		"skills": ["go", "postgres"],
		"experience_years": 5,
		"resume_text": "Built backend services."
	}`

	err = schemas.ValidateJSONString(string(schemaData), validProfile)
	assert.NoError(t, err)
}

func TestCandidateProfileSchema_RejectsMissingName(t *testing.T) {
	schemaData, err := os.ReadFile("candidate_profile.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), `{"skills": ["go"]}`)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestJobRequirementSchema_AcceptsValidJob(t *testing.T) {
	schemaData, err := os.ReadFile("job_requirement.schema.json")
	require.NoError(t, err)

	validJob := `{
		"title": "Backend Engineer",
		"company": "Acme",
		"required_skills": ["go"],
		"min_experience_years": 3
	}`

	err = schemas.ValidateJSONString(string(schemaData), validJob)
	assert.NoError(t, err)
}

func TestMatchResultSchema_RejectsOutOfRangeScore(t *testing.T) {
	schemaData, err := os.ReadFile("match_result.schema.json")
	require.NoError(t, err)

	badResult := `{
		"matched_skills": [],
		"missing_skills": [],
		"skill_score": 0.5,
		"semantic_score": 0.5,
		"match_percentage": 142.0
	}`

	err = schemas.ValidateJSONString(string(schemaData), badResult)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCandidatesSchema_ReferencesResolvable(t *testing.T) {
	// The candidates schema resolves candidate_profile via a relative $ref,
	// which requires file-based loading.
	candidatesJSON := filepath.Join(t.TempDir(), "candidates.json")
	content := `[{"name": "Alice", "skills": ["go"]}]`
	require.NoError(t, os.WriteFile(candidatesJSON, []byte(content), 0644))

	err := schemas.ValidateJSON("candidates.schema.json", candidatesJSON)
	assert.NoError(t, err)
}
