package queries

// TSDeclarations indexes the top-level declarations of a TypeScript or TSX
// file, exported or not. Only direct children of the program (or of a
// top-level export statement) are matched so that nested helpers never
// shadow module-level names.
const TSDeclarations = `
; interfaces
(program
  (interface_declaration
    name: (type_identifier) @interface.name) @interface.definition)
(program
  (export_statement
    declaration: (interface_declaration
      name: (type_identifier) @interface.name) @interface.definition))

; type aliases
(program
  (type_alias_declaration
    name: (type_identifier) @type.name) @type.definition)
(program
  (export_statement
    declaration: (type_alias_declaration
      name: (type_identifier) @type.name) @type.definition))

; enums
(program
  (enum_declaration
    name: (identifier) @enum.name) @enum.definition)
(program
  (export_statement
    declaration: (enum_declaration
      name: (identifier) @enum.name) @enum.definition))

; functions
(program
  (function_declaration
    name: (identifier) @function.name) @function.definition)
(program
  (export_statement
    declaration: (function_declaration
      name: (identifier) @function.name) @function.definition))

; classes
(program
  (class_declaration
    name: (type_identifier) @class.name) @class.definition)
(program
  (export_statement
    declaration: (class_declaration
      name: (type_identifier) @class.name) @class.definition))

; variables
(program
  (lexical_declaration
    (variable_declarator
      name: (identifier) @variable.name) @variable.definition))
(program
  (export_statement
    declaration: (lexical_declaration
      (variable_declarator
        name: (identifier) @variable.name) @variable.definition)))
`

// JSDeclarations is the JavaScript counterpart. The grammar has no type
// declarations and names classes with plain identifiers.
const JSDeclarations = `
; functions
(program
  (function_declaration
    name: (identifier) @function.name) @function.definition)
(program
  (export_statement
    declaration: (function_declaration
      name: (identifier) @function.name) @function.definition))

; classes
(program
  (class_declaration
    name: (identifier) @class.name) @class.definition)
(program
  (export_statement
    declaration: (class_declaration
      name: (identifier) @class.name) @class.definition))

; variables
(program
  (lexical_declaration
    (variable_declarator
      name: (identifier) @variable.name) @variable.definition))
(program
  (export_statement
    declaration: (lexical_declaration
      (variable_declarator
        name: (identifier) @variable.name) @variable.definition)))
`
