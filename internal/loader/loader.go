package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/job-fit/internal/schemas"
	"github.com/jonathan/job-fit/internal/types"
	bundled "github.com/jonathan/job-fit/schemas"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadJob reads and validates a structured job
func LoadJob(path string) (*types.Job, error) {
	var job types.Job
	content, err := decodeFile(path, &job)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(path, &job); err != nil {
		return nil, err
	}
	if err := checkSchema(path, bundled.Job, content, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// LoadProfile reads and validates a candidate profile, then normalizes experience
// end dates so that Current is true exactly when EndDate is empty.
func LoadProfile(path string) (*types.Profile, error) {
	var profile types.Profile
	content, err := decodeFile(path, &profile)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(path, &profile); err != nil {
		return nil, err
	}
	if err := checkSchema(path, bundled.Profile, content, &profile); err != nil {
		return nil, err
	}
	if err := normalizeExperiences(path, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// LoadJobsDir loads every .json, .yaml and .yml file in dir, sorted by file name
func LoadJobsDir(dir string) ([]*types.Job, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, &LoadError{Path: dir, Message: "failed to read directory", Cause: err}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isSupported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, nil, &LoadError{Path: dir, Message: "no job files found"}
	}

	jobs := make([]*types.Job, 0, len(paths))
	for _, p := range paths {
		job, err := LoadJob(p)
		if err != nil {
			return nil, nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, paths, nil
}

func isSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func isJSON(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

// decodeFile decodes path into v and returns the raw content
func decodeFile(path string, v any) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to unmarshal YAML", Cause: err}
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to unmarshal JSON", Cause: err}
		}
	default:
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("unsupported file extension %q", filepath.Ext(path))}
	}
	return content, nil
}

// checkSchema validates a JSON document as written against the bundled schema.
// YAML scalars are untyped, so YAML documents are checked in their decoded form.
func checkSchema(path, schemaName string, content []byte, decoded any) error {
	schema, err := bundled.Load(schemaName)
	if err != nil {
		return &LoadError{Path: path, Message: "failed to load schema", Cause: err}
	}

	if isJSON(path) {
		err = schemas.ValidateJSONString(schema, string(content))
	} else {
		err = schemas.ValidateValue(schema, decoded)
	}
	if err == nil {
		return nil
	}

	var verr *schemas.ValidationError
	if !errors.As(err, &verr) {
		return &LoadError{Path: path, Message: "schema check failed", Cause: err}
	}
	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field, fe.Message))
	}
	return &ValidationError{Path: path, Fields: fields}
}

func validateStruct(path string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &LoadError{Path: path, Message: "validation failed", Cause: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return &ValidationError{Path: path, Fields: fields}
}

func normalizeExperiences(path string, profile *types.Profile) error {
	for i := range profile.Experiences {
		exp := &profile.Experiences[i]
		exp.EndDate = strings.TrimSpace(exp.EndDate)

		if exp.EndDate == "" {
			exp.Current = true
			continue
		}
		if exp.Current {
			return &ValidationError{
				Path:   path,
				Fields: []string{fmt.Sprintf("Profile.Experiences[%d] (current role has end_date %s)", i, exp.EndDate)},
			}
		}
	}
	return nil
}
