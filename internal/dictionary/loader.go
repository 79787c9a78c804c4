package dictionary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"autotax/invoice-engine/internal/logging"
)

// Files names the optional YAML override files for the individual tables.
// Empty entries keep the built-in defaults.
type Files struct {
	Vendors    string
	Categories string
	Payments   string
	QRKeys     string
}

// Load builds a Dictionary from the defaults with any present override
// files applied on top. A missing file is not an error: the corresponding
// default table stays in place, matching how category configuration has
// always behaved.
func Load(files Files, log logging.Logger) (*Dictionary, error) {
	dict := Default()

	if files.Vendors != "" {
		var vendors []VendorBrand
		if ok, err := readYAML(files.Vendors, &vendors, log); err != nil {
			return nil, err
		} else if ok {
			dict.Vendors = vendors
		}
	}

	if files.Categories != "" {
		var categories []CategoryBucket
		if ok, err := readYAML(files.Categories, &categories, log); err != nil {
			return nil, err
		} else if ok {
			dict.Categories = categories
		}
	}

	if files.Payments != "" {
		var payments []PaymentMethod
		if ok, err := readYAML(files.Payments, &payments, log); err != nil {
			return nil, err
		} else if ok {
			dict.Payments = payments
		}
	}

	if files.QRKeys != "" {
		var keys map[string]string
		if ok, err := readYAML(files.QRKeys, &keys, log); err != nil {
			return nil, err
		} else if ok {
			dict.QRKeys = keys
		}
	}

	return dict, nil
}

// readYAML unmarshals a YAML file into out. The first return value is false
// when the file does not exist.
func readYAML(path string, out interface{}, log logging.Logger) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", path).Warn("Dictionary override file not found, using built-in table")
			return false, nil
		}
		return false, fmt.Errorf("error reading dictionary file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("error parsing dictionary file %s: %w", path, err)
	}

	log.WithField("file", path).Debug("Loaded dictionary override file")
	return true, nil
}
