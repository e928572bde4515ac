// SPDX-License-Identifier: MPL-2.0

package bundlefile

// Generate returns starter bundlefile content for the given template name
// ("default", "minimal", or "full"). Unknown names fall back to "default".
func Generate(template string) string {
	switch template {
	case "minimal":
		return minimalTemplate
	case "full":
		return fullTemplate
	default:
		return defaultTemplate
	}
}

const minimalTemplate = `// bundlefile.cue - packaging manifest
name:  "MyApp"
entry: "main.py"
`

const defaultTemplate = `// bundlefile.cue - packaging manifest
//
// Run 'pybundle build' in this directory to produce a portable executable.

name:    "MyApp"
entry:   "main.py"
mode:    "onefile"
console: false

// pip requirements installed before packaging.
requires: ["pyinstaller"]

// Packages whose data files or submodules PyInstaller misses on its own.
collect: []

// Extra module names to force-include.
hidden_imports: []

// Large unrelated libraries to keep out of the artifact.
excludes: ["matplotlib", "numpy", "pandas", "scipy"]
`

const fullTemplate = `// bundlefile.cue - packaging manifest
//
// Full example: a Tkinter GUI that discovers ONVIF cameras and probes RTSP
// streams with a bundled ffprobe binary.

name:    "CameraFinder"
entry:   "camera_gui.py"
mode:    "onefile"
console: false

requires: ["pyinstaller", "wsdiscovery", "onvif-zeep"]

collect: [
	{name: "wsdiscovery", hidden_imports: ["wsdiscovery.daemon", "wsdiscovery.actions", "wsdiscovery.threaded"]},
	// zeep's WSDL/XSD definition files must ship with the bundle or ONVIF
	// calls fail at runtime with "resource not found".
	{name: "zeep", datas: true, hidden_imports: ["zeep.wsdl", "zeep.xsd", "zeep.transports"]},
	{name: "onvif", datas: true, hidden_imports: ["onvif.client"]},
	{name: "lxml", binaries: true, hidden_imports: ["lxml.etree", "lxml._elementpath"]},
]

hidden_imports: ["urllib3", "requests", "certifi"]

excludes: ["matplotlib", "numpy", "pandas", "scipy", "PIL", "PyQt5", "PyQt6"]

tool: {
	name: "ffprobe.exe"
	url:  "https://github.com/BtbN/FFmpeg-Builds/releases/download/latest/ffmpeg-master-latest-win64-gpl.zip"
}
`
