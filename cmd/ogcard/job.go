package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/ogcard"
)

// job is a render request read from a YAML file:
//
//	template: article
//	props:
//	  title: Hello
//	config:
//	  width: 1200
//	  fonts:
//	    - name: Inter
//	      weight: 400
//	      url: https://example.com/inter.ttf
type job struct {
	Template string                  `yaml:"template"`
	Props    ogcard.TemplateProps    `yaml:"props"`
	Config   ogcard.GenerationConfig `yaml:"config"`
}

func readJob(path string) (job, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return job{}, err
		}
		defer f.Close()
		r = f
	}

	var j job
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil {
		return job{}, fmt.Errorf("decode job %s: %w", path, err)
	}
	if j.Template == "" {
		return job{}, fmt.Errorf("job %s: template is required", path)
	}
	if j.Props == nil {
		j.Props = ogcard.TemplateProps{}
	}
	return j, nil
}
