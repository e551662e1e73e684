package client

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	zerr "github.com/pkgsweep/pkgsweep/errors"
	"github.com/pkgsweep/pkgsweep/pkg/api/config"
	"github.com/pkgsweep/pkgsweep/pkg/retention/types"
)

const noLabel = "-"

func printCandidates(writer io.Writer, format string, candidates []types.Version) error {
	switch format {
	case config.FormatJSON:
		json := jsoniter.ConfigCompatibleWithStandardLibrary

		body, err := json.MarshalIndent(candidates, "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(writer, string(body))

		return err
	case config.FormatYAML:
		body, err := yaml.Marshal(candidates)
		if err != nil {
			return err
		}

		_, err = writer.Write(body)

		return err
	case config.FormatText, "":
		return printTable(writer, candidates)
	default:
		return fmt.Errorf("%w: %q", zerr.ErrUnsupportedFormat, format)
	}
}

func printTable(writer io.Writer, candidates []types.Version) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(writer, "no package versions selected for deletion")

		return err
	}

	table := tablewriter.NewWriter(writer)

	if err := table.Append([]string{"ID", "VERSION"}); err != nil {
		return err
	}

	for _, candidate := range candidates {
		label := candidate.Label
		if label == "" {
			label = noLabel
		}

		if err := table.Append([]string{candidate.ID, label}); err != nil {
			return err
		}
	}

	return table.Render()
}
