// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"fmt"
	"strings"

	"pybundle-cli/pkg/bundlefile"
)

// RenderSpec generates the PyInstaller spec file for the descriptor. The
// output is deterministic: the descriptor's lists are already sorted, and
// everything else is emitted in a fixed order.
func RenderSpec(d *Descriptor) string {
	var sb strings.Builder

	sb.WriteString("# -*- mode: python ; coding: utf-8 -*-\n")
	sb.WriteString("# Generated by pybundle. Edits are overwritten on the next build.\n\n")

	if imports := hookImports(d.Collected); len(imports) > 0 {
		sb.WriteString(fmt.Sprintf("from PyInstaller.utils.hooks import %s\n\n", strings.Join(imports, ", ")))
	}

	sb.WriteString(fmt.Sprintf("datas = %s\n", pyDataList(d.Datas)))
	sb.WriteString("binaries = []\n")
	sb.WriteString(fmt.Sprintf("hiddenimports = %s\n", pyStringList(d.HiddenImports)))

	if len(d.Collected) > 0 {
		sb.WriteString("\n# Collected third-party packages\n")
		for _, pkg := range d.Collected {
			writeCollect(&sb, pkg)
		}
	}

	sb.WriteString("\na = Analysis(\n")
	sb.WriteString(fmt.Sprintf("    [%s],\n", pyString(d.EntryScript)))
	sb.WriteString("    pathex=[],\n")
	sb.WriteString("    binaries=binaries,\n")
	sb.WriteString("    datas=datas,\n")
	sb.WriteString("    hiddenimports=hiddenimports,\n")
	sb.WriteString("    hookspath=[],\n")
	sb.WriteString("    hooksconfig={},\n")
	sb.WriteString("    runtime_hooks=[],\n")
	sb.WriteString(fmt.Sprintf("    excludes=%s,\n", pyStringList(d.Excludes)))
	sb.WriteString("    noarchive=False,\n")
	sb.WriteString(")\n")
	sb.WriteString("pyz = PYZ(a.pure)\n\n")

	if d.OneFile {
		writeOneFileExe(&sb, d)
	} else {
		writeOneDirExe(&sb, d)
	}

	return sb.String()
}

// hookImports returns the PyInstaller hook helpers the collected packages
// need, in fixed order.
func hookImports(pkgs []bundlefile.Package) []string {
	var all, datas, bins bool
	for _, pkg := range pkgs {
		switch {
		case pkg.CollectAll:
			all = true
		default:
			if pkg.Datas {
				datas = true
			}
			if pkg.Binaries {
				bins = true
			}
		}
	}

	var imports []string
	if all {
		imports = append(imports, "collect_all")
	}
	if datas {
		imports = append(imports, "collect_data_files")
	}
	if bins {
		imports = append(imports, "collect_dynamic_libs")
	}
	return imports
}

func writeCollect(sb *strings.Builder, pkg bundlefile.Package) {
	name := pyString(pkg.Name)
	if pkg.CollectAll {
		sb.WriteString(fmt.Sprintf("_all = collect_all(%s)\n", name))
		sb.WriteString("datas += _all[0]\n")
		sb.WriteString("binaries += _all[1]\n")
		sb.WriteString("hiddenimports += _all[2]\n")
		return
	}
	if pkg.Datas {
		sb.WriteString(fmt.Sprintf("datas += collect_data_files(%s)\n", name))
	}
	if pkg.Binaries {
		sb.WriteString(fmt.Sprintf("binaries += collect_dynamic_libs(%s)\n", name))
	}
}

func writeOneFileExe(sb *strings.Builder, d *Descriptor) {
	sb.WriteString("exe = EXE(\n")
	sb.WriteString("    pyz,\n")
	sb.WriteString("    a.scripts,\n")
	sb.WriteString("    a.binaries,\n")
	sb.WriteString("    a.datas,\n")
	sb.WriteString("    [],\n")
	writeExeOptions(sb, d)
	sb.WriteString("    runtime_tmpdir=None,\n")
	sb.WriteString(")\n")
}

func writeOneDirExe(sb *strings.Builder, d *Descriptor) {
	sb.WriteString("exe = EXE(\n")
	sb.WriteString("    pyz,\n")
	sb.WriteString("    a.scripts,\n")
	sb.WriteString("    [],\n")
	sb.WriteString("    exclude_binaries=True,\n")
	writeExeOptions(sb, d)
	sb.WriteString(")\n")

	sb.WriteString("coll = COLLECT(\n")
	sb.WriteString("    exe,\n")
	sb.WriteString("    a.binaries,\n")
	sb.WriteString("    a.datas,\n")
	sb.WriteString("    strip=False,\n")
	sb.WriteString(fmt.Sprintf("    upx=%s,\n", pyBool(d.UPX)))
	sb.WriteString("    upx_exclude=[],\n")
	sb.WriteString(fmt.Sprintf("    name=%s,\n", pyString(d.ArtifactName)))
	sb.WriteString(")\n")
}

func writeExeOptions(sb *strings.Builder, d *Descriptor) {
	sb.WriteString(fmt.Sprintf("    name=%s,\n", pyString(d.ArtifactName)))
	sb.WriteString("    debug=False,\n")
	sb.WriteString("    bootloader_ignore_signals=False,\n")
	sb.WriteString("    strip=False,\n")
	sb.WriteString(fmt.Sprintf("    upx=%s,\n", pyBool(d.UPX)))
	sb.WriteString(fmt.Sprintf("    console=%s,\n", pyBool(d.Console)))
	if d.Icon != "" {
		sb.WriteString(fmt.Sprintf("    icon=%s,\n", pyString(d.Icon)))
	}
}

// pyString renders a single-quoted Python string literal.
func pyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func pyStringList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = pyString(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func pyDataList(datas []bundlefile.DataFile) string {
	pairs := make([]string, len(datas))
	for i, df := range datas {
		pairs[i] = fmt.Sprintf("(%s, %s)", pyString(df.Source), pyString(df.Dest))
	}
	return "[" + strings.Join(pairs, ", ") + "]"
}
