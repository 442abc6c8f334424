// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/counterpoint/pkg/ux"
	"github.com/AleutianAI/counterpoint/services/counterpoint/analysis"
)

func newRulesCmd() *cobra.Command {
	var kinds bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules in execution order",
		Long: `List every rule with the finding kinds it reports.

Rule names are accepted by 'counterpoint analyze --only'. With --kinds the
finding catalog is listed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if kinds {
				var rows [][]string
				for _, k := range analysis.Kinds() {
					rows = append(rows, []string{k.Name(), k.Description()})
				}
				ux.Table(out, []string{"KIND", "MESSAGE"}, rows)
				return nil
			}

			var rows [][]string
			for _, r := range analysis.DefaultRules() {
				names := make([]string, len(r.Kinds))
				for i, k := range r.Kinds {
					names[i] = k.Name()
				}
				rows = append(rows, []string{r.Name, strings.Join(names, ","), r.Description})
			}
			ux.Table(out, []string{"RULE", "REPORTS", "DESCRIPTION"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&kinds, "kinds", false, "List finding kinds instead of rules")
	return cmd
}

func newConfigCmd() *cobra.Command {
	var (
		species    int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration a species uses, optionally with overrides
applied. The output is a valid --config file.

Examples:
  counterpoint config --species 2
  counterpoint config --species 1 --config lenient.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg analysis.Configuration
				err error
			)
			if configPath != "" {
				cfg, err = analysis.LoadConfiguration(configPath, species)
			} else {
				cfg, err = analysis.ForSpecies(species)
			}
			if err != nil {
				return failure(err)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return failure(err)
			}
			if err := enc.Close(); err != nil {
				return failure(err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&species, "species", "s", 1, "Species (1 or 2)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML overrides to apply")
	return cmd
}
