package trace

import "strings"

// explanations maps well-known error types to short remediation hints.
// Fixed and non-exhaustive; a best-effort heuristic, not a diagnosis.
var explanations = map[string]string{
	"KeyError":             "A dictionary lookup used a key that does not exist. Verify the key or use a lookup with a default value.",
	"IndexError":           "A sequence index is out of range. Check length before indexing, and watch for off-by-one arithmetic.",
	"TypeError":            "An operation received a value of the wrong type. Inspect the values flowing into the failing call.",
	"ValueError":           "An argument had the right type but an unacceptable value. Validate inputs before the failing call.",
	"AttributeError":       "An attribute or method was accessed on an object that does not define it, often a None value.",
	"NameError":            "A name was used before being defined. Look for typos or missing imports.",
	"FileNotFoundError":    "A file path does not exist. Check the path, the working directory, and file permissions.",
	"ZeroDivisionError":    "A division by zero occurred. Guard the denominator.",
	"RecursionError":       "Maximum recursion depth exceeded. Check the base case of the recursive call.",
	"ConnectionError":      "A network connection failed. Check that the remote service is up and reachable.",
	"TimeoutError":         "An operation exceeded its deadline. Check the remote service latency or raise the timeout.",
	"PermissionError":      "The process lacks permission for the operation. Check file modes and the effective user.",
	"MemoryError":          "The process ran out of memory. Look for unbounded growth or reduce the working set.",
	"NullPointerException": "A null reference was dereferenced. Trace where the value should have been assigned.",
	"ReferenceError":       "A variable was used before declaration. Look for typos or temporal dead zone issues.",
	"RangeError":           "A value is outside its allowed range, often runaway recursion or an invalid array length.",
	"SyntaxError":          "The source could not be parsed. The reported position is where parsing gave up, not always where the mistake is.",
}

// genericExplanation is used for error types the table does not cover.
const genericExplanation = "No specific guidance for this error type; review the error message and the outermost frames."

// Explain returns the canned explanation for an error type.
func Explain(errorType string) string {
	if explanation, ok := explanations[errorType]; ok {
		return explanation
	}
	return genericExplanation
}

// suggestions maps error types to concrete debugging steps, tried in
// order. Unlike explanations, connection and timeout errors are matched
// by substring so BrokerConnectionError and ReadTimeoutError land here
// too.
var suggestions = map[string][]string{
	"KeyError": {
		"Check if the key exists before accessing it",
		"Use a lookup with a default value instead of direct indexing",
		"Print the available keys to see what is actually present",
		"Check for typos in the key name",
	},
	"IndexError": {
		"Check the length of the sequence before indexing",
		"Verify loop bounds and off-by-one arithmetic",
		"Print the sequence length and the index being accessed",
		"Guard against empty sequences",
	},
	"TypeError": {
		"Check the types of the values flowing into the failing call",
		"Print the type of each argument at the call site",
		"Verify the function signature matches how it is called",
		"Look for values that can be nil or None on some paths",
	},
}

// networkSuggestions applies to any error type mentioning a connection
// or a timeout.
var networkSuggestions = []string{
	"Verify the remote service is running and reachable",
	"Check network connectivity and firewall rules",
	"Verify the URL or address is correct",
	"Check if the service is rate limiting requests",
}

// genericSuggestions is the fallback for uncovered error types.
var genericSuggestions = []string{
	"Add logging around the failing call to narrow down the state",
	"Check recent changes to the code in the innermost frames",
	"Review the error message for specifics",
	"Try reproducing with a simpler input",
}

// Suggest returns debugging steps for an error type.
func Suggest(errorType string) []string {
	if steps, ok := suggestions[errorType]; ok {
		return steps
	}
	if strings.Contains(errorType, "Connection") || strings.Contains(errorType, "Timeout") {
		return networkSuggestions
	}
	return genericSuggestions
}
