// Package analyze loads annotated Go packages into a class index.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to read
// named struct types, their fields and declared methods, and the orm
// directives and struct tags attached to them.
//
// Conventions:
//   - class directives in the type doc comment: //orm:entity,
//     //orm:mapped-superclass, //orm:embeddable, //orm:access field|property
//   - field tags: orm:"id", orm:"embedded-id", orm:"transient", orm:"-",
//     orm:"access=field|property", comma separated
//   - method directives in the method doc comment: //orm:id,
//     //orm:transient, //orm:access field|property
//   - the first embedded named struct is the superclass
package analyze
