package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// ErrInvalidSettings wraps every settings decoding failure.
var ErrInvalidSettings = errors.New("invalid department settings")

// DepartmentBucket maps a department label to the raw department ids it
// accepts, optionally gated on one management area id.
type DepartmentBucket struct {
	Label            string   `json:"-" validate:"required"`
	DeptIDs          []string `json:"dept_ids" validate:"dive,required"`
	ManagementAreaID string   `json:"management_area_id,omitempty"`
}

// Settings is the ordered department bucket configuration. Label order is
// the bucketing order.
type Settings struct {
	Departments []DepartmentBucket `validate:"dive"`
}

// DefaultSettings returns the four stock labels with no ids configured.
func DefaultSettings() Settings {
	labels := []string{"Inbound", "DA", "ICQA", "CRETs"}
	s := Settings{Departments: make([]DepartmentBucket, 0, len(labels))}
	for _, l := range labels {
		s.Departments = append(s.Departments, DepartmentBucket{Label: l, DeptIDs: []string{}})
	}
	return s
}

// Labels returns department labels in configured order.
func (s Settings) Labels() []string {
	out := make([]string, 0, len(s.Departments))
	for _, d := range s.Departments {
		out = append(out, d.Label)
	}
	return out
}

// LoadSettings decodes settings from JSON or YAML. An empty format sniffs
// the payload: a leading '{' means JSON.
func LoadSettings(data []byte, format string) (Settings, error) {
	var s Settings
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return s, nil
	}

	switch strings.ToLower(format) {
	case "":
		if trimmed[0] == '{' {
			return LoadSettings(trimmed, "json")
		}
		return LoadSettings(trimmed, "yaml")
	case "json":
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(trimmed, &s); err != nil {
			return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	default:
		return Settings{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidSettings, format)
	}
	return s, nil
}

var validate = validator.New()

// Validate reports configuration problems. Problems never stop a build;
// they are surfaced in diagnostics.
func (s Settings) Validate() []string {
	var issues []string

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				issues = append(issues, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			issues = append(issues, err.Error())
		}
	}

	seen := make(map[string]string)
	for _, d := range s.Departments {
		for _, id := range d.DeptIDs {
			if prev, ok := seen[id]; ok {
				if prev != d.Label {
					issues = append(issues, fmt.Sprintf("dept id %q in %q is shadowed by %q", id, d.Label, prev))
				}
				continue
			}
			seen[id] = d.Label
		}
	}
	return issues
}

type rawBucket struct {
	DeptIDs          []flexString `json:"dept_ids"`
	ManagementAreaID *flexString  `json:"management_area_id"`
}

func (rb rawBucket) bucket(label string) DepartmentBucket {
	b := DepartmentBucket{Label: label, DeptIDs: make([]string, 0, len(rb.DeptIDs))}
	for _, id := range rb.DeptIDs {
		b.DeptIDs = append(b.DeptIDs, string(id))
	}
	if rb.ManagementAreaID != nil {
		b.ManagementAreaID = string(*rb.ManagementAreaID)
	}
	return b
}

// flexString accepts a JSON string or number and keeps its literal text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// UnmarshalJSON decodes {"departments": {label: bucket, ...}} keeping label order.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	raw, ok := top["departments"]
	s.Departments = nil
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("departments must be an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, _ := tok.(string)
		var rb rawBucket
		if err := dec.Decode(&rb); err != nil {
			return fmt.Errorf("department %q: %w", label, err)
		}
		s.Departments = append(s.Departments, rb.bucket(label))
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes departments in configured order.
func (s Settings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"departments":{`)
	for i, d := range s.Departments {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes the same shape as JSON from YAML, keeping label order.
func (s *Settings) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var doc struct {
		Departments yaml.MapSlice `yaml:"departments"`
	}
	if err := unmarshal(&doc); err != nil {
		return err
	}

	s.Departments = nil
	for _, item := range doc.Departments {
		label := scalarString(item.Key)
		b := DepartmentBucket{Label: label, DeptIDs: []string{}}
		fields, err := mappingOf(item.Value)
		if err != nil {
			return fmt.Errorf("department %q: %w", label, err)
		}
		for _, f := range fields {
			switch scalarString(f.Key) {
			case "dept_ids":
				ids, ok := f.Value.([]interface{})
				if !ok && f.Value != nil {
					return fmt.Errorf("department %q: dept_ids must be a list", label)
				}
				for _, id := range ids {
					b.DeptIDs = append(b.DeptIDs, scalarString(id))
				}
			case "management_area_id":
				b.ManagementAreaID = scalarString(f.Value)
			}
		}
		s.Departments = append(s.Departments, b)
	}
	return nil
}

func mappingOf(v interface{}) (yaml.MapSlice, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case yaml.MapSlice:
		return t, nil
	case map[interface{}]interface{}:
		out := make(yaml.MapSlice, 0, len(t))
		for k, val := range t {
			out = append(out, yaml.MapItem{Key: k, Value: val})
		}
		return out, nil
	default:
		return nil, errors.New("must be a mapping")
	}
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
