// Package descriptor reads and writes YAML class descriptor files.
//
// A descriptor file lists classes with their superclass, members and
// annotations, so an index can be built without Go sources:
//
//	version: "1"
//	classes:
//	  - name: shop.Order
//	    extends: shop.Base
//	    extends_args: [int64]
//	    annotations: [Entity]
//	    fields:
//	      - name: total
//	        type: int64
//	    methods:
//	      - name: GetNote
//	        returns: string
//	        annotations:
//	          - Transient
//	          - {name: Access, value: PROPERTY}
//
// Annotation names may be short ("Entity") or qualified
// ("persistence.Entity").
package descriptor
