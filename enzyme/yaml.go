package enzyme

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// file is the layout of a standards file:
//
//	enzymes:
//	  BbsI: gaagac
//	standards:
//	  - name: MoClo
//	    sites: [BsaI, BbsI]
//	    prefix: ""
//	    suffix: ""
type file struct {
	Enzymes   map[string]string `yaml:"enzymes"`
	Standards []Standard        `yaml:"standards"`
}

// Load reads enzymes and standards in YAML format and adds them to
// the registry. Enzymes are added first so standards may use them.
func (r *Registry) Load(rd io.Reader) error {
	var f file
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return fmt.Errorf("reading standards: %w", err)
	}
	for name, pattern := range f.Enzymes {
		if err := r.AddEnzyme(name, pattern); err != nil {
			return err
		}
	}
	for _, s := range f.Standards {
		if err := r.AddStandard(s); err != nil {
			return err
		}
	}
	return nil
}
