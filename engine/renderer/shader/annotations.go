// Package shader expands //@oxy: comment directives in WGSL so the shared struct
// definitions and bind group declarations of a shader stay in step with the Go types
// that fill their buffers.
//
// Two directives exist:
//
//	//@oxy:include <struct>
//	//@oxy:group <group> <binding> <address_space> <var_name> <struct>
//
// Struct keys are camera, vertex and instance. Address spaces are storage_uniform
// (var<uniform>) and storage_read (var<storage, read>).
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const annotationPrefix = "@oxy:"

// AnnotationType names a directive.
type AnnotationType string

const (
	annotationTypeInclude      AnnotationType = "include"
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// AnnotationArg is a struct key or an address space as written in a directive.
type AnnotationArg string

const (
	AnnotationArgCamera   AnnotationArg = "camera"   // engine/camera/assets/camera_uniform.wgsl
	AnnotationArgVertex   AnnotationArg = "vertex"   // engine/shape/assets/vertex.wgsl
	AnnotationArgInstance AnnotationArg = "instance" // engine/shape/assets/instance.wgsl

	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"
	annotationArgStorageTypeRead    AnnotationArg = "storage_read"
)

var (
	structKeys    = []AnnotationArg{AnnotationArgCamera, AnnotationArgVertex, AnnotationArgInstance}
	addressSpaces = []AnnotationArg{annotationArgStorageTypeUniform, annotationArgStorageTypeRead}
)

// Annotation is one parsed directive.
//
// For include, Args is [struct]. For group, Args is [address_space, var_name, struct] and
// Group and Binding hold the indices.
type Annotation struct {
	Type    AnnotationType
	Args    []AnnotationArg
	Line    int
	Group   int
	Binding int
}

// parseAnnotation returns nil, nil for a line that carries no directive.
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	idx := strings.Index(line, annotationPrefix)
	if idx < 0 {
		return nil, nil
	}
	fields := strings.Fields(line[idx+len(annotationPrefix):])
	if len(fields) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	var (
		a   *Annotation
		err error
	)
	switch kind, rest := AnnotationType(fields[0]), fields[1:]; kind {
	case annotationTypeInclude:
		a, err = parseInclude(rest)
	case AnnotationTypeBindingGroup:
		a, err = parseGroup(rest)
	default:
		err = fmt.Errorf("unknown @oxy annotation type %q", fields[0])
	}
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum, err)
	}
	a.Line = lineNum
	return a, nil
}

func parseInclude(args []string) (*Annotation, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("include takes exactly one argument, got %d", len(args))
	}
	key, err := structKey(args[0])
	if err != nil {
		return nil, err
	}
	return &Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{key}}, nil
}

func parseGroup(args []string) (*Annotation, error) {
	if len(args) != 5 {
		return nil, fmt.Errorf("group takes exactly five arguments (group, binding, address space, var name, struct), got %d", len(args))
	}
	group, err := strconv.Atoi(args[0])
	if err != nil || group < 0 {
		return nil, fmt.Errorf("invalid group number %q", args[0])
	}
	binding, err := strconv.Atoi(args[1])
	if err != nil || binding < 0 {
		return nil, fmt.Errorf("invalid binding number %q", args[1])
	}
	space := AnnotationArg(args[2])
	if !slices.Contains(addressSpaces, space) {
		return nil, fmt.Errorf("unknown address space %q", args[2])
	}
	key, err := structKey(args[4])
	if err != nil {
		return nil, err
	}
	return &Annotation{
		Type:    AnnotationTypeBindingGroup,
		Args:    []AnnotationArg{space, AnnotationArg(args[3]), key},
		Group:   group,
		Binding: binding,
	}, nil
}

func structKey(s string) (AnnotationArg, error) {
	key := AnnotationArg(s)
	if !slices.Contains(structKeys, key) {
		return "", fmt.Errorf("unknown struct type %q", s)
	}
	return key, nil
}
