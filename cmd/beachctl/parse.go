package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"beachtrack/internal/domain"
	"beachtrack/internal/parser"
	"beachtrack/internal/pdftext"
	"beachtrack/internal/profile"
)

const autoType = "auto"

var parseCmd = &cobra.Command{
	Use:   "parse <file.pdf>",
	Short: "Extract and classify a profile PDF without storing anything",
	Long:  "Runs text extraction, section classification and summarisation on a local PDF and prints the result as JSON. Use --type auto to detect the source tool from the text.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var (
	parseType    string
	parseRawText bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseType, "type", "t", autoType, "Profile type: jigsaw, pathways, workday or auto")
	parseCmd.Flags().BoolVar(&parseRawText, "raw", false, "Include the extracted raw text in the output")
	rootCmd.AddCommand(parseCmd)
}

type parseOutput struct {
	ProfileType      domain.ProfileType    `json:"profileType"`
	ParsedData       domain.ParsedDocument `json:"parsedData"`
	GeneratedProfile domain.Summary        `json:"generatedProfile"`
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	text, err := pdftext.NewExtractor().Extract(cmd.Context(), data)
	if err != nil {
		return err
	}

	out, err := classifyText(text, parseType)
	if err != nil {
		return err
	}
	if !parseRawText {
		out.ParsedData.RawText = ""
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

// classifyText classifies text as kind, or detects the kind when it is "auto".
func classifyText(text, kind string) (*parseOutput, error) {
	var (
		doc domain.ParsedDocument
		t   domain.ProfileType
	)
	if kind == autoType {
		doc, t = parser.AutoClassify(text)
	} else {
		var err error
		t, err = domain.ParseProfileType(kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, kind)
		}
		c, err := parser.ForProfileType(t)
		if err != nil {
			return nil, err
		}
		doc = c.Classify(text)
	}
	return &parseOutput{
		ProfileType:      t,
		ParsedData:       doc,
		GeneratedProfile: profile.Summarize(doc),
	}, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
