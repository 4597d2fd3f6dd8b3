package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// configPathEnv names the file used when LoadConfig gets no path.
const configPathEnv = "CONFIG_FILE"

// LoadConfig fills target, a pointer to struct, from a YAML file and then from
// environment variables. The file is path, or $CONFIG_FILE when path is empty;
// with neither only the environment is applied. Unknown YAML keys are errors.
//
// Env keys are derived from field names joined by underscores (PARENT_CHILD)
// unless a field carries `env:"KEY"`; `env:"-"` skips the field. Slices are
// read as comma separated lists. Every malformed variable is reported.
func LoadConfig(target interface{}, path string) error {
	root, err := structPointer(target)
	if err != nil {
		return err
	}

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if err := decodeFile(path, target); err != nil {
			return err
		}
	}

	var errs []error
	applyEnv(root, "", &errs)
	return errors.Join(errs...)
}

func structPointer(target interface{}) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, errors.New("config: target is nil")
	}
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, errors.New("config: target must be pointer to struct")
	}
	return v.Elem(), nil
}

func decodeFile(path string, target interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: read file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func applyEnv(v reflect.Value, prefix string, errs *[]error) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field, sf := v.Field(i), t.Field(i)
		if !field.CanSet() {
			continue
		}
		if sf.Anonymous {
			applyEnv(field, prefix, errs)
			continue
		}

		key, ok := envKey(sf, prefix)
		if !ok {
			continue
		}
		if field.Kind() == reflect.Struct {
			applyEnv(field, key, errs)
			continue
		}

		raw, set := os.LookupEnv(key)
		if !set {
			continue
		}
		if err := setFromString(field, raw); err != nil {
			*errs = append(*errs, fmt.Errorf("config: parse %s: %w", key, err))
		}
	}
}

// envKey returns the variable name for sf, or false when the field opts out.
func envKey(sf reflect.StructField, prefix string) (string, bool) {
	tag := sf.Tag.Get("env")
	switch {
	case tag == "-":
		return "", false
	case tag != "":
		return upper(tag), true
	case prefix == "":
		return upper(sf.Name), true
	default:
		return prefix + "_" + upper(sf.Name), true
	}
}

func upper(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
}

func setFromString(field reflect.Value, raw string) error {
	switch kind := field.Kind(); kind {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Slice:
		list := reflect.MakeSlice(field.Type(), 0, strings.Count(raw, ",")+1)
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item == "" {
				continue
			}
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := setFromString(elem, item); err != nil {
				return fmt.Errorf("item %q: %w", item, err)
			}
			list = reflect.Append(list, elem)
		}
		field.Set(list)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
