package pslint

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(_ *cobra.Command, _ []string) error {
			var path string
			var content string
			switch provider {
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [lint]
lint:
  stage: lint
  image: golang:1.25
  before_script:
    - apt-get update && apt-get install -y powershell || true
  script:
    - go install github.com/pslint/pslint@latest
    - pslint --recursive --output-format sarif --output-file pslint.sarif
  artifacts:
    when: always
    paths:
      - pslint.sarif
`
			case "bitbucket":
				path = "bitbucket-pipelines.yml"
				content = `pipelines:
  default:
    - step:
        name: pslint
        image: golang:1.25
        caches:
          - go
        script:
          - go install github.com/pslint/pslint@latest
          - pslint --recursive --output-format sarif --output-file pslint.sarif
        artifacts:
          - pslint.sarif
`
			case "azure":
				path = "azure-pipelines.yml"
				content = `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go install github.com/pslint/pslint@latest
    pslint --recursive --output-format sarif --output-file pslint.sarif
  displayName: 'pslint'
- publish: pslint.sarif
  artifact: pslint-results
  condition: succeededOrFailed()
`
			default:
				return fmt.Errorf("unknown --provider. Supported: gitlab, bitbucket, azure")
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: gitlab | bitbucket | azure")
	_ = initCmd.MarkFlagRequired("provider")
	ci.AddCommand(initCmd)
}
