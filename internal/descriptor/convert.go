package descriptor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"

	"entity-binder/internal/index"
	"entity-binder/internal/persistence"
)

// ToIndex validates f and builds the class index it describes.
func ToIndex(f *File) (*index.Index, error) {
	if diags := Validate(f); diags.HasErrors() {
		return nil, fmt.Errorf("invalid descriptor: %w", diags.Error())
	}

	indexer := index.NewIndexer()

	for i := range f.Classes {
		if err := indexer.Index(toClassInfo(&f.Classes[i])); err != nil {
			return nil, err
		}
	}

	return indexer.Complete(), nil
}

func toClassInfo(c *Class) *index.ClassInfo {
	ci := &index.ClassInfo{
		Name:          index.DotName(c.Name),
		SuperName:     index.DotName(c.Extends),
		TypeParams:    slices.Clone(c.TypeParams),
		SuperTypeArgs: slices.Clone(c.ExtendsArgs),
	}

	annotate(ci, index.TargetClass, "", c.Annotations)

	for _, f := range c.Fields {
		ci.Fields = append(ci.Fields, index.FieldInfo{
			Name:      f.Name,
			Type:      f.Type,
			Synthetic: f.Synthetic,
			Static:    f.Static,
		})
		annotate(ci, index.TargetField, f.Name, f.Annotations)
	}

	for _, m := range c.Methods {
		ci.Methods = append(ci.Methods, index.MethodInfo{
			Name:      m.Name,
			Params:    slices.Clone(m.Params),
			Results:   slices.Clone([]string(m.Returns)),
			Synthetic: m.Synthetic,
		})
		annotate(ci, index.TargetMethod, m.Name, m.Annotations)
	}

	return ci
}

func annotate(ci *index.ClassInfo, kind index.TargetKind, member string, annotations []Annotation) {
	for _, a := range annotations {
		// validated before conversion
		dn, _ := persistence.Lookup(a.Name)
		ci.Annotate(dn, kind, member, maps.Clone(a.Values))
	}
}

// FromIndex describes every class of idx, using short annotation names.
func FromIndex(idx *index.Index) *File {
	f := &File{Version: CurrentVersion}

	for _, ci := range idx.KnownClasses() {
		f.Classes = append(f.Classes, fromClassInfo(ci))
	}

	return f
}

func fromClassInfo(ci *index.ClassInfo) Class {
	c := Class{
		Name:        ci.Name.String(),
		Extends:     ci.SuperName.String(),
		TypeParams:  slices.Clone(ci.TypeParams),
		ExtendsArgs: slices.Clone(ci.SuperTypeArgs),
		Fields: lo.Map(ci.Fields, func(f index.FieldInfo, _ int) Field {
			return Field{Name: f.Name, Type: f.Type, Synthetic: f.Synthetic, Static: f.Static}
		}),
		Methods: lo.Map(ci.Methods, func(m index.MethodInfo, _ int) Method {
			return Method{
				Name:      m.Name,
				Params:    slices.Clone(m.Params),
				Returns:   StringOrArray(slices.Clone(m.Results)),
				Synthetic: m.Synthetic,
			}
		}),
	}

	for _, name := range slices.Sorted(maps.Keys(ci.Annotations)) {
		for _, a := range ci.Annotations[name] {
			out := Annotation{Name: name.Local(), Values: maps.Clone(a.Values)}

			switch a.Target.Kind {
			case index.TargetClass:
				c.Annotations = append(c.Annotations, out)
			case index.TargetField:
				if i := slices.IndexFunc(c.Fields, func(f Field) bool { return f.Name == a.Target.Member }); i >= 0 {
					c.Fields[i].Annotations = append(c.Fields[i].Annotations, out)
				}
			case index.TargetMethod:
				if i := slices.IndexFunc(c.Methods, func(m Method) bool { return m.Name == a.Target.Member }); i >= 0 {
					c.Methods[i].Annotations = append(c.Methods[i].Annotations, out)
				}
			}
		}
	}

	return c
}
