package analyze

import (
	"cmp"
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/tools/go/packages"

	"entity-binder/internal/diagnostic"
	"entity-binder/internal/index"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Options configures an Analyzer.
type Options struct {
	// Dir is the directory packages are loaded from. Empty means the
	// current directory.
	Dir    string
	Logger zerolog.Logger
}

// Analyzer loads Go packages and indexes their struct types as classes.
type Analyzer struct {
	opts       Options
	modulePath string
	classes    map[index.DotName]*types.Named
	diags      diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{
		opts:    opts,
		classes: make(map[index.DotName]*types.Named),
	}
}

// Load loads the packages matching patterns and returns their classes.
// Patterns are standard Go package patterns (e.g., "./store", "entity-binder/warehouse").
func (a *Analyzer) Load(ctx context.Context, patterns ...string) (*index.Index, error) {
	dir := a.opts.Dir
	if dir == "" {
		dir = "."
	}

	modulePath, err := ModulePath(dir)
	if err != nil {
		return nil, err
	}

	a.modulePath = modulePath

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.opts.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	slices.SortFunc(pkgs, func(x, y *packages.Package) int { return cmp.Compare(x.PkgPath, y.PkgPath) })

	indexer := index.NewIndexer()

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg, indexer); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return indexer.Complete(), nil
}

// ModulePath returns the path of the module the last Load ran in.
func (a *Analyzer) ModulePath() string {
	return a.modulePath
}

// Diagnostics returns the problems found in directives and tags.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diags
}

// Resolver returns a type resolver over the loaded classes.
func (a *Analyzer) Resolver() *Resolver {
	return &Resolver{modulePath: a.modulePath, classes: a.classes}
}

// declDocs holds the doc comments found in a package's syntax.
type declDocs struct {
	types     map[string]*ast.CommentGroup
	methods   map[string]*ast.CommentGroup // "Type.Method"
	generated map[string]bool              // "Type.Method" declared in a generated file
}

func collectDocs(files []*ast.File) *declDocs {
	d := &declDocs{
		types:     map[string]*ast.CommentGroup{},
		methods:   map[string]*ast.CommentGroup{},
		generated: map[string]bool{},
	}

	for _, f := range files {
		generated := ast.IsGenerated(f)

		for _, decl := range f.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					continue
				}

				for _, spec := range decl.Specs {
					ts := spec.(*ast.TypeSpec)

					doc := ts.Doc
					if doc == nil && len(decl.Specs) == 1 {
						doc = decl.Doc
					}

					d.types[ts.Name.Name] = doc
				}

			case *ast.FuncDecl:
				if decl.Recv == nil || len(decl.Recv.List) == 0 {
					continue
				}

				key := receiverTypeName(decl.Recv.List[0].Type) + "." + decl.Name.Name
				d.methods[key] = decl.Doc
				d.generated[key] = generated
			}
		}
	}

	return d
}

func receiverTypeName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// processPackage indexes the named struct types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package, indexer *index.Indexer) error {
	docs := collectDocs(pkg.Syntax)
	ts := NewTypeStringer(pkg.Types)

	var count int

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}

		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		ci := a.classInfo(obj, named, st, ts, docs)
		if err := indexer.Index(ci); err != nil {
			return err
		}

		a.classes[ci.Name] = named
		count++
	}

	a.opts.Logger.Debug().
		Str("package", pkg.PkgPath).
		Int("classes", count).
		Msg("indexed package")

	return nil
}

func (a *Analyzer) classInfo(
	obj *types.TypeName,
	named *types.Named,
	st *types.Struct,
	ts *TypeStringer,
	docs *declDocs,
) *index.ClassInfo {
	ci := &index.ClassInfo{Name: ClassName(obj, a.modulePath)}

	if tparams := named.TypeParams(); tparams != nil {
		for i := range tparams.Len() {
			ci.TypeParams = append(ci.TypeParams, tparams.At(i).Obj().Name())
		}
	}

	superIdx, super := superclassField(st)
	if super != nil {
		ci.SuperName = ClassName(super.Obj(), a.modulePath)

		if args := super.TypeArgs(); args != nil {
			ci.SuperTypeArgs = lo.Map(lo.Range(args.Len()), func(i int, _ int) string {
				return ts.TypeString(args.At(i))
			})
		}
	}

	directives, err := ParseDirectives(docs.types[obj.Name()], index.TargetClass)
	a.report(ci.Name, "", err)

	for _, d := range directives {
		d.apply(ci, index.TargetClass, "")
	}

	for i := range st.NumFields() {
		if i == superIdx {
			continue
		}

		f := st.Field(i)
		ci.Fields = append(ci.Fields, index.FieldInfo{
			Name:      f.Name(),
			Type:      ts.TypeString(f.Type()),
			Synthetic: f.Name() == "_",
		})

		directives, err := ParseTag(reflect.StructTag(st.Tag(i)).Get(tagKey))
		a.report(ci.Name, f.Name(), err)

		for _, d := range directives {
			d.apply(ci, index.TargetField, f.Name())
		}
	}

	for i := range named.NumMethods() {
		m := named.Method(i)
		sig := m.Type().(*types.Signature)
		key := obj.Name() + "." + m.Name()

		ci.Methods = append(ci.Methods, index.MethodInfo{
			Name:      m.Name(),
			Params:    ts.TupleStrings(sig.Params()),
			Results:   ts.TupleStrings(sig.Results()),
			Synthetic: docs.generated[key],
		})

		directives, err := ParseDirectives(docs.methods[key], index.TargetMethod)
		a.report(ci.Name, m.Name(), err)

		for _, d := range directives {
			d.apply(ci, index.TargetMethod, m.Name())
		}
	}

	return ci
}

func (a *Analyzer) report(class index.DotName, member string, err error) {
	if err == nil {
		return
	}

	a.diags.AddWarning(diagnostic.CodeUnknownAnnotation, err.Error(), class.String(), member)
	a.opts.Logger.Warn().
		Err(err).
		Str("class", class.String()).
		Str("member", member).
		Msg("ignoring malformed directive")
}
