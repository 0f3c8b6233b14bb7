package ui

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
)

// ShowSection prints a section header for the configure flow
func ShowSection(title string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(Stdout.Writer(), "\n%s\n", title)
}

// ConfigureAgent prompts the user to select a model backend
func ConfigureAgent(options []string, current string) (string, error) {
	var agent string
	prompt := &survey.Select{
		Message: "Select an LLM provider:",
		Options: options,
	}
	if current != "" {
		prompt.Default = current
	}

	if err := survey.AskOne(prompt, &agent); err != nil {
		return "", err
	}

	return agent, nil
}

// PromptInput asks for a free-text value, returning current when left blank
func PromptInput(message, current string) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: message,
		Default: current,
	}

	if err := survey.AskOne(prompt, &value); err != nil {
		return "", err
	}

	return value, nil
}

// PromptYesNo asks a yes/no question
func PromptYesNo(message string, defaultYes bool) (bool, error) {
	answer := defaultYes
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultYes,
	}

	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}

	return answer, nil
}
