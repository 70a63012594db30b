// Package metamodel groups annotated classes into entity hierarchies and
// resolves, for every class in a hierarchy, its access type and its ordered
// set of persistent properties.
//
// Pipeline:
//  1. Collect entity classes from the index and reject classes that are
//     both entity and mapped superclass.
//  2. Walk each entity's superclass chain, keeping mapped ancestors only.
//  3. Partition the chains by topmost mapped ancestor.
//  4. Determine each hierarchy's default access type from an explicit
//     class-level access annotation or from the identifier placement.
//  5. Build ConfiguredClass nodes top-down with resolved member types.
package metamodel
