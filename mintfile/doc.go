/*
Package mintfile reads and writes Mint manifests.

A Mintfile lists one package per line as "repo@version". Text after "#"
is a comment, blank lines are ignored:

	# tools
	realm/SwiftLint@0.54.0
	yonaskolb/XcodeGen@2.38.0 # project generator
	git@github.com:org/private.git@1.2.0

The raw text is kept next to the parsed packages so callers can patch it
without reformatting anything.
*/
package mintfile
