// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ScriptFileNotFoundId Id = iota + 1
	ScriptFileParseErrorId
	ScriptNotFoundId
	UnknownInputId
	ExecutionFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	scriptFileNotFoundIssue = &Issue{
		id: ScriptFileNotFoundId,
		mdMsg: `
# No workscript file found!

We searched for a workscript file but couldn't find one in the expected
locations.

## Search locations (in order of precedence):
1. Current directory (workscript.cue or *.ws.hcl)
2. ~/.workscript/scripts/
3. Paths configured in your config file

## Things you can try:
- Create a workscript file in your current directory:
~~~
$ workscript init
~~~

- Or move to a directory that has one:
~~~
$ cd /path/to/your/project
$ workscript list
~~~

## Example workscript.cue structure:
~~~cue
scripts: {
  greet: {
    description: "Print a greeting"
    inputs: {
      name: {example: "world"}
    }
    script: "echo \"hello $WS_NAME\""
  }
}
~~~`,
	}

	scriptFileParseErrorIssue = &Issue{
		id: ScriptFileParseErrorId,
		mdMsg: `
# Failed to parse workscript file!

Your workscript file contains syntax errors or invalid declarations.

## Common issues:
- Invalid CUE or HCL syntax (missing quotes, braces, etc.)
- Unknown field names
- Input names that don't start with a letter
- An empty script body

## Things you can try:
- Check the error message above for the specific line/column
- Validate the file without running anything:
~~~
$ workscript validate
~~~

- Run with verbose mode for more details:
~~~
$ workscript --verbose list
~~~

## Example of a valid script declaration:
~~~cue
scripts: {
  build: {
    description: "Build the project"
    inputs: {
      target: {example: "dist"}
    }
    script: """
      echo "building into $WS_TARGET"
      """
  }
}
~~~`,
	}

	scriptNotFoundIssue = &Issue{
		id: ScriptNotFoundId,
		mdMsg: `
# Script not found!

The script you specified was not found in any discovered workscript file.

## Things you can try:
- List all available scripts:
~~~
$ workscript list
~~~

- Check for typos in the script name
- Verify the workscript file declares your script
- Use tab completion:
~~~
$ workscript run <TAB>
~~~`,
	}

	unknownInputIssue = &Issue{
		id: UnknownInputId,
		mdMsg: `
# Unknown input!

A value was supplied for an input the script never declared.

## Things you can try:
- Show the script's declared inputs and flags:
~~~
$ workscript show <script>
~~~

- Check for typos in the flag or environment variable name
- Declare the input in the script's inputs block if you meant to add it`,
	}

	executionFailedIssue = &Issue{
		id: ExecutionFailedId,
		mdMsg: `
# Script execution failed!

The script's body failed to execute properly.

## Common causes:
- Command not found in PATH
- Permission denied
- Syntax error in the script body
- The script exited through a declared failure channel

## Things you can try:
- Run with verbose mode for more details:
~~~
$ workscript --verbose run <script>
~~~

- Test the script body manually in your shell
- Check the declared exits with:
~~~
$ workscript show <script>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the workscript configuration file.

## Configuration file locations:
- Linux: ~/.config/workscript/config.cue
- macOS: ~/Library/Application Support/workscript/config.cue
- Windows: %APPDATA%\workscript\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/workscript/config.cue
~~~

## Example configuration:
~~~cue
env_namespace: "___"
search_paths: [
    "/home/user/shared-scripts"
]

ui: {
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		scriptFileNotFoundIssue.Id():   scriptFileNotFoundIssue,
		scriptFileParseErrorIssue.Id(): scriptFileParseErrorIssue,
		scriptNotFoundIssue.Id():       scriptNotFoundIssue,
		unknownInputIssue.Id():         unknownInputIssue,
		executionFailedIssue.Id():      executionFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
