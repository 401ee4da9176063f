package lisp

// VarArgSymbol is the symbol that indicates a variadic argument in a builtin
// function's list of formal arguments.
const VarArgSymbol = "&"

// ArgvSymbol is the global binding holding process arguments as a list of
// strings.  The driver installs it before running user code.
const ArgvSymbol = "*ARGV*"
