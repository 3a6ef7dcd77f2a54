// Package rust emits mod.rs modules for the lcm crate.
package rust

import (
	"fmt"

	"github.com/okra-platform/lcmgen/internal/codegen/writer"
	"github.com/okra-platform/lcmgen/internal/schema"
)

// DefaultFileName is the aggregate module file of every package directory
const DefaultFileName = "mod.rs"

const indent = "    "

// Config holds the Rust backend settings
type Config struct {
	FileName string
}

// Generator generates Rust message types from a schema model
type Generator struct {
	cfg    Config
	mapper Mapper
}

// NewGenerator creates a new Rust code generator
func NewGenerator(cfg Config) *Generator {
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}

	return &Generator{cfg: cfg}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "rust"
}

// FileName returns the name of the per-package aggregate file
func (g *Generator) FileName() string {
	return g.cfg.FileName
}

// Header renders the disclaimer, runtime imports and the peer types used by pkg
func (g *Generator) Header(pkg *schema.Package) ([]byte, error) {
	w := writer.NewWriter(indent, "///")

	w.WriteLine("// GENERATED CODE - DO NOT EDIT")
	w.BlankLine()
	w.WriteLine("use lcm::Message;")
	w.WriteLine("use std::io::{Result, Read, Write};")

	if uses := g.resolveUses(pkg); len(uses.decls) > 0 {
		w.BlankLine()
		for _, u := range uses.decls {
			w.WriteLine(u.String())
		}
	}

	return w.Bytes(), nil
}

// Declaration renders the struct definition of s
func (g *Generator) Declaration(pkg *schema.Package, s *schema.Struct) ([]byte, error) {
	set := g.resolveUses(pkg)
	w := writer.NewWriter(indent, "///")

	w.Newline()
	w.WriteDocComment(s.Comment)
	w.WriteLine("#[derive(Debug, Default)]")
	w.WriteBlock(fmt.Sprintf("pub struct %s {", g.mapper.TypeNameOf(s.Name.Short)), "}", func() {
		for i := range s.Members {
			m := &s.Members[i]
			w.WriteDocComment(m.Comment)
			w.WriteLinef("pub %s: %s,", g.mapper.FieldNameOf(m.Name), g.renderType(set, m))
		}
	})

	return w.Bytes(), nil
}

// Behavior renders the constants impl and the Message impl of s
func (g *Generator) Behavior(_ *schema.Package, s *schema.Struct) ([]byte, error) {
	name := g.mapper.TypeNameOf(s.Name.Short)
	w := writer.NewWriter(indent, "///")

	w.Newline()
	g.writeConstants(w, s, name)

	w.WriteBlock(fmt.Sprintf("impl Message for %s {", name), "}", func() {
		g.writeHash(w, s)
		w.BlankLine()
		g.writeEncode(w, s)
		w.BlankLine()
		g.writeDecode(w, s, name)
		w.BlankLine()
		g.writeSize(w, s)
	})

	return w.Bytes(), nil
}
