// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	UnsupportedOSId Id = iota + 1
	UnknownCompilerId
	CompilerTooNewId
	CompilerTooOldId
	UnsupportedArchId
	InvalidPointerSizeId
	ConfigLoadFailedId
	ProbeFailedId
	MalformedSymbolsId
	ReservedFileNameId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink
	extLinks []HttpLink
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

// Render renders the issue with glamour. stylePath is a glamour style name
// such as "dark", "light" or "notty".
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	unsupportedOSIssue = &Issue{
		id: UnsupportedOSId,
		mdMsg: `
# Unsupported operating system

None of the OS markers Coral recognizes were predefined by the compiler.
Coral builds only on **Linux**, **Mac OS X** and **Windows**.

## Things you can try
- Check that the compiler targets one of the supported systems
- When cross-compiling, pass the target flag in ` + "`compiler.command`" + `, e.g.
~~~
compiler: command: "g++ --target=x86_64-linux-gnu"
~~~
- Inspect what the compiler reports:
~~~
$ coralenv symbols
~~~`,
	}

	unknownCompilerIssue = &Issue{
		id: UnknownCompilerId,
		mdMsg: `
# Unknown compiler

The toolchain defines neither ` + "`_MSC_VER`" + ` nor ` + "`__GNUC__`" + `.
Coral requires MSVC or a GCC-compatible compiler (GCC, MinGW, LLVM-GCC or Clang).

## Things you can try
- Point ` + "`compiler.command`" + ` at g++ or clang++
- For MSVC, which cannot dump its macros, provide ` + "`compiler.symbols`" + ` or ` + "`compiler.symbols_file`" + ``,
	}

	compilerTooNewIssue = &Issue{
		id: CompilerTooNewId,
		mdMsg: `
# MSVC version not recognized

The value of ` + "`_MSC_VER`" + ` is newer than every entry of the MSVC version table.
A build key cannot be derived for a compiler whose ABI has not been classified.

## Things you can try
- Add a bracket for the new release to your config:
~~~
msvc: versions: [
	{min: 1600, version: "10.0"},
	{min: 1700, version: "11.0"},
	{min: 1800, version: "12.0"},
]
~~~
- Or build with a supported Visual Studio version`,
	}

	compilerTooOldIssue = &Issue{
		id: CompilerTooOldId,
		mdMsg: `
# MSVC version too old

The value of ` + "`_MSC_VER`" + ` is below the oldest supported release.
The error names the minimum version.

## Things you can try
- Upgrade Visual Studio to at least the minimum version`,
	}

	unsupportedArchIssue = &Issue{
		id: UnsupportedArchId,
		mdMsg: `
# Unsupported architecture

Coral supports only 32-bit and 64-bit x86 processors.
No x86 marker (` + "`__i386__`" + `, ` + "`__x86_64__`" + `, ` + "`_M_IX86`" + `, ` + "`_M_X64`" + `) was defined.

## Things you can try
- Build for an x86 target, e.g. add ` + "`-m32`" + ` or ` + "`-m64`" + ` to ` + "`compiler.command`",
	}

	invalidPointerSizeIssue = &Issue{
		id: InvalidPointerSizeId,
		mdMsg: `
# Invalid pointer size

The configured pointer size must be **4** (32-bit) or **8** (64-bit).

## Things you can try
- Set ` + "`pointer_size`" + ` in your config or pass ` + "`--pointer-size`" + `
- Leave it unset to use the compiler's ` + "`__SIZEOF_POINTER__`",
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the schema.

## Things you can try
- Print the effective configuration:
~~~
$ coralenv config show
~~~
- Write a fresh default file:
~~~
$ coralenv config init
~~~`,
	}

	probeFailedIssue = &Issue{
		id: ProbeFailedId,
		mdMsg: `
# Compiler probe failed

Running the compiler to list its predefined macros did not succeed.
The probe runs ` + "`<compiler.command> -dM -E -x c++ -`" + ` with empty input.

## Things you can try
- Check that the compiler is installed and on your PATH
- Set ` + "`compiler.command`" + ` or the ` + "`CORALENV_COMPILER_COMMAND`" + ` variable
- Use a saved dump instead with ` + "`--symbols-file`",
	}

	malformedSymbolsIssue = &Issue{
		id: MalformedSymbolsId,
		mdMsg: `
# Malformed symbol dump

Every non-empty line of a symbol dump must be a ` + "`#define NAME [VALUE]`" + ` directive.

## Things you can try
- Regenerate the dump:
~~~
$ g++ -dM -E -x c++ - < /dev/null > symbols.txt
~~~`,
	}

	reservedFileNameIssue = &Issue{
		id: ReservedFileNameId,
		mdMsg: `
# Reserved output file name

Windows reserves device names such as ` + "`CON`" + `, ` + "`NUL`" + ` or ` + "`COM1`" + ` regardless of extension.
Generated files must be usable on every platform.

## Things you can try
- Choose another name for ` + "`output.header`" + ` or ` + "`output.manifest`",
	}

	issues = map[Id]*Issue{
		unsupportedOSIssue.Id():      unsupportedOSIssue,
		unknownCompilerIssue.Id():    unknownCompilerIssue,
		compilerTooNewIssue.Id():     compilerTooNewIssue,
		compilerTooOldIssue.Id():     compilerTooOldIssue,
		unsupportedArchIssue.Id():    unsupportedArchIssue,
		invalidPointerSizeIssue.Id(): invalidPointerSizeIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		probeFailedIssue.Id():        probeFailedIssue,
		malformedSymbolsIssue.Id():   malformedSymbolsIssue,
		reservedFileNameIssue.Id():   reservedFileNameIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
