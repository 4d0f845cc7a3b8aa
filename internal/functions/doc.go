// Package functions is the agent-callable function surface of the tool.
//
// Every function has a name, a version, a category and a parameter schema
// so that a caller (typically an LLM agent) can discover what it may call.
// Arguments arrive as a JSON object and are decoded strictly: unknown
// fields and missing required fields are rejected with ErrInvalidArguments.
//
// The table holds:
//
//	getPropertyList
//	get{String,Boolean,Int,IntArray,Long,LongArray,Float,FloatArray}Property
//	set{String,Boolean,Int,IntArray,Long,LongArray,Float,FloatArray}Property
//
// Getters return the property value. Setters return "success".
package functions
