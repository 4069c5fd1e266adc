package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// asker wraps a Prompter with the typed questions the console and the
// wizard need. Invalid answers are asked again.
type asker struct {
	p   Prompter
	out io.Writer
}

func (a asker) confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		answer, err := a.p.ReadLine(fmt.Sprintf("%s %s: ", question, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(a.out, "Please enter y or n")
	}
}

func (a asker) text(question, def string) (string, error) {
	prompt := question + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s (%s): ", question, def)
	}
	answer, err := a.p.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return def, nil
	}
	return answer, nil
}

func (a asker) secret(question string) (string, error) {
	for {
		answer, err := a.p.ReadPassword(question + ": ")
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
		fmt.Fprintln(a.out, "A value is required")
	}
}

func (a asker) choose(question string, choices []string, def string) (string, error) {
	prompt := fmt.Sprintf("%s [%s] (%s): ", question, strings.Join(choices, "/"), def)
	for {
		answer, err := a.p.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer == "" {
			return def, nil
		}
		for _, c := range choices {
			if answer == c {
				return c, nil
			}
		}
		fmt.Fprintln(a.out, "Please select one of the available options")
	}
}

func (a asker) float(question string, def float64) (float64, error) {
	for {
		answer, err := a.text(question, strconv.FormatFloat(def, 'g', -1, 64))
		if err != nil {
			return 0, err
		}
		if v, err := strconv.ParseFloat(answer, 64); err == nil {
			return v, nil
		}
		fmt.Fprintln(a.out, "Please enter a number")
	}
}

func (a asker) integer(question string, def int) (int, error) {
	for {
		answer, err := a.text(question, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		if v, err := strconv.Atoi(answer); err == nil && v > 0 {
			return v, nil
		}
		fmt.Fprintln(a.out, "Please enter a positive whole number")
	}
}
