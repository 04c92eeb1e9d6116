// Package utils holds the helpers shared by the petci packages
package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/TranRoger/spring-petclinic-microservices/pkg/core"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/errs"
	"github.com/TranRoger/spring-petclinic-microservices/pkg/global"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"gopkg.in/yaml.v3"
)

const (
	namespaceSeparator = "."
	emptyTagName       = "-"
	yamlTagName        = "yaml"
	requiredTagName    = "required"
)

// CreateDirectory creates directory recursively if does not exists
func CreateDirectory(path string) error {
	if err := os.MkdirAll(path, global.DirectoryPermissions); err != nil {
		return errs.ErrDirCrt(err.Error())
	}
	return nil
}

// escapeGlob escapes the doublestar meta characters of a literal path
func escapeGlob(path string) string {
	var b strings.Builder
	for _, r := range path {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GetConfigFileName resolves path inside repoDir, a .yml file also matches its .yaml twin and vice versa
func GetConfigFileName(repoDir, path string) (string, error) {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		if _, err := os.Stat(filepath.Join(repoDir, path)); err != nil {
			return "", errs.ErrCIConfigNotFound(path)
		}
		return path, nil
	}
	pattern := escapeGlob(strings.TrimSuffix(path, ext)) + ".{yml,yaml}"
	matches, _ := doublestar.Glob(os.DirFS(repoDir), pattern)
	if len(matches) == 0 {
		return "", errs.ErrCIConfigNotFound(path)
	}
	// the requested extension wins over its twin
	for _, match := range matches {
		if match == path {
			return match, nil
		}
	}
	return matches[0], nil
}

// ValidateStructCIYml parses the .petci.yml content on top of the defaults and validates it
func ValidateStructCIYml(ctx context.Context, ymlContent []byte, ymlFilename string) (*core.CIConfig, error) {
	ciConfig := core.DefaultCIConfig()
	if err := yaml.Unmarshal(ymlContent, ciConfig); err != nil {
		return nil, fmt.Errorf("`%s` configuration file contains invalid format. Please correct the `%s` file", ymlFilename, ymlFilename)
	}
	validate, err := getValidator()
	if err != nil {
		return nil, err
	}
	if err := validateStruct(validate, ciConfig, ymlFilename); err != nil {
		return nil, err
	}
	return ciConfig, nil
}

// configureValidator configure the struct validator
func configureValidator(validate *validator.Validate, trans ut.Translator) {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// nolint: gomnd
		name := strings.SplitN(fld.Tag.Get(yamlTagName), ",", 2)[0]
		if name == emptyTagName || name == "" {
			return fld.Name
		}
		return name
	})
	// nolint: errcheck
	validate.RegisterTranslation(requiredTagName, trans, func(ut ut.Translator) error {
		return ut.Add(requiredTagName, "{0} field is required!", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		i := strings.Index(fe.Namespace(), namespaceSeparator)
		t, _ := ut.T(requiredTagName, fe.Namespace()[i+1:])
		return t
	})
}

func getValidator() (*validator.Validate, error) {
	enObj := en.New()
	uni := ut.New(enObj, enObj)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	configureValidator(validate, trans)
	return validate, nil
}

func validateStruct(validate *validator.Validate, config interface{}, ymlFilename string) error {
	validateErr := validate.Struct(config)
	if validateErr != nil {
		validationErrs, ok := validateErr.(validator.ValidationErrors)
		if !ok {
			return validateErr
		}
		err := new(errs.ErrInvalidConf)
		err.Message = errs.New(
			fmt.Sprintf(
				"Invalid values provided for the following fields in the `%s` configuration file: \n",
				ymlFilename),
		).Error()
		for _, e := range validationErrs {
			err.Fields = append(err.Fields, e.Namespace()[strings.Index(e.Namespace(), namespaceSeparator)+1:])
			err.Values = append(err.Values, e.Value())
		}
		return err
	}
	return nil
}
