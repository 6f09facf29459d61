package main

import "testing"

func TestFindUserConfig(t *testing.T) {
	t.Setenv("OFFSETGEN_CONFIG", "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "none", args: []string{"generate"}, want: ""},
		{name: "equals", args: []string{"--config=my.yaml", "scan"}, want: "my.yaml"},
		{name: "separate", args: []string{"generate", "--config", "my.toml"}, want: "my.toml"},
		{name: "dangling", args: []string{"--config"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findUserConfig(tt.args); got != tt.want {
				t.Errorf("findUserConfig(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestFindUserConfigEnv(t *testing.T) {
	t.Setenv("OFFSETGEN_CONFIG", "env.json")

	if got := findUserConfig(nil); got != "env.json" {
		t.Errorf("findUserConfig(nil) = %q, want env.json", got)
	}
	if got := findUserConfig([]string{"--config=flag.json"}); got != "flag.json" {
		t.Errorf("flag should win over env, got %q", got)
	}
}
