package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/hints"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// runTemplateCmd prints the built-in template or a preset as YAML, lists
// presets, or validates a template file.
func runTemplateCmd(args []string, env *Environment) error {
	flags, err := parseTemplateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	switch {
	case flags.list:
		fmt.Fprintln(env.Stdout, strings.Join(assets.PresetNames(), "\n"))
		return nil
	case flags.check != "":
		return checkTemplate(flags.check, env)
	}

	t := model.DefaultTemplate()
	if flags.preset != "" {
		t, err = assets.Preset(flags.preset)
		if err != nil {
			if errors.Is(err, assets.ErrPresetNotFound) {
				return fmt.Errorf("%w%s", err, hints.ForPresetNotFound(assets.PresetNames()))
			}
			return err
		}
	}

	data, err := yamlutil.Marshal(t)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}

// checkTemplate validates the structure and colors of a template file.
func checkTemplate(path string, env *Environment) error {
	t, err := readTemplateFile(path)
	if err != nil {
		return err
	}
	if err := t.CheckColors(); err != nil {
		return fmt.Errorf("%s: %w%s", path, err, hints.ForTemplateInvalid())
	}
	fmt.Fprintf(env.Stdout, "%s: ok\n", path)
	return nil
}
