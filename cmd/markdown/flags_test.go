package main

import "testing"

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    cliFlags
		wantErr bool
	}{
		{
			name: "no flags",
			args: nil,
			want: cliFlags{},
		},
		{
			name: "help",
			args: []string{"--help"},
			want: cliFlags{help: true},
		},
		{
			name: "version",
			args: []string{"--version"},
			want: cliFlags{version: true},
		},
		{
			name: "unsafe accepted",
			args: []string{"--unsafe"},
			want: cliFlags{unsafe: true},
		},
		{
			name: "verbose short",
			args: []string{"-v"},
			want: cliFlags{verbose: true},
		},
		{
			name:    "unknown flag",
			args:    []string{"--nope"},
			wantErr: true,
		},
		{
			name:    "positional args rejected",
			args:    []string{"input.md"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseFlags() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("parseFlags(%v) = %+v, want %+v", tt.args, *got, tt.want)
			}
		})
	}
}
