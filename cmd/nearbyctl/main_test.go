package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Проверки аргументов выполняются до подключения к БД
func TestNearCommand_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"latitude not a number", []string{"near", "abc", "126.97", "1"}, `"abc" is not a number`},
		{"radius not a number", []string{"near", "37.56", "126.97", "km"}, `argument 3`},
		{"unknown kind", []string{"near", "37.56", "126.97", "1", "--kind", "bikes"}, `unknown kind "bikes"`},
		{"unknown mode", []string{"near", "37.56", "126.97", "1", "--mode", "cheap"}, `unknown mode "cheap"`},
		{"missing radius", []string{"near", "37.56", "126.97"}, "accepts 3 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kindFlag, modeFlag = "parking", "distance"
			rootCmd.SetArgs(tt.args)
			err := rootCmd.Execute()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestRefreshCommand_UnknownKind(t *testing.T) {
	rootCmd.SetArgs([]string{"refresh", "bikes"})
	assert.ErrorContains(t, rootCmd.Execute(), `unknown kind "bikes"`)
}
