package server

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const EnvPrefix = "GEMINIMCP"

// RuntimeOverrider changes a parsed runtime, e.g. from the environment.
type RuntimeOverrider interface {
	ApplyOverrides(runtime *ServerRuntime) error
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envRuntimeOverrider struct {
	lookup LookupFunc
}

// NewEnvRuntimeOverrider overrides runtime fields from GEMINIMCP_* variables named
// after the field path, e.g. GEMINIMCP_STREAMABLEHTTPCONFIG_PORT.
func NewEnvRuntimeOverrider() RuntimeOverrider {
	return NewLookupRuntimeOverrider(os.LookupEnv)
}

func NewLookupRuntimeOverrider(lookup LookupFunc) RuntimeOverrider {
	return &envRuntimeOverrider{lookup: lookup}
}

func (e *envRuntimeOverrider) ApplyOverrides(runtime *ServerRuntime) error {
	_, err := e.processStruct(reflect.ValueOf(runtime).Elem(), EnvPrefix)
	return err
}

func (e *envRuntimeOverrider) processStruct(val reflect.Value, prefix string) (bool, error) {
	typ := val.Type()

	madeUpdate := false
	for i := 0; i < val.NumField(); i++ {
		fieldVal := val.Field(i)
		fieldTyp := typ.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if fieldVal.Kind() == reflect.Ptr && fieldVal.Type().Elem().Kind() == reflect.Struct {
			wasNil := fieldVal.IsNil()
			if wasNil {
				fieldVal.Set(reflect.New(fieldVal.Type().Elem()))
			}

			updated, err := e.processStruct(fieldVal.Elem(), buildEnvKey(prefix, fieldTyp.Name))
			if updated {
				madeUpdate = true
			} else if wasNil {
				// nothing was overridden, keep the field unset
				fieldVal.Set(reflect.Zero(fieldVal.Type()))
			}
			if err != nil {
				return madeUpdate, err
			}
			continue
		}

		if fieldVal.Kind() == reflect.Struct {
			keyPrefix := prefix
			if !fieldTyp.Anonymous {
				keyPrefix = buildEnvKey(prefix, fieldTyp.Name)
			}
			updated, err := e.processStruct(fieldVal, keyPrefix)
			if updated {
				madeUpdate = true
			}
			if err != nil {
				return madeUpdate, err
			}
			continue
		}

		envKey := buildEnvKey(prefix, fieldTyp.Name)
		envVal, found := e.lookup(envKey)
		if !found {
			continue
		}

		if err := setField(fieldVal, envVal); err != nil {
			return madeUpdate, fmt.Errorf("error setting field %s from env var %s: %w", fieldTyp.Name, envKey, err)
		}

		madeUpdate = true
	}

	return madeUpdate, nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// time.Duration is an int64 underneath
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
			return nil
		}
		intVal, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(intVal)
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolVal)
	case reflect.Float32, reflect.Float64:
		floatVal, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(floatVal)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported field type: %v", field.Kind())
		}
		field.Set(reflect.ValueOf(strings.Split(value, ",")))
	case reflect.Ptr:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), value)
	case reflect.Map:
		if field.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type: %v", field.Type().Key().Kind())
		}
		mapValue := reflect.New(field.Type())
		if err := json.Unmarshal([]byte(value), mapValue.Interface()); err != nil {
			return fmt.Errorf("failed to parse map value as JSON: %w", err)
		}
		field.Set(mapValue.Elem())
	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

func buildEnvKey(prefix, name string) string {
	if prefix == "" {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(prefix + "_" + name)
}
