package semantic

// frameworkBases maps well-known framework types to their direct base type.
// Only the exception hierarchy matters to the shipped rules.
var frameworkBases = map[string]string{
	"Exception":                         "Object",
	"SystemException":                   "Exception",
	"ApplicationException":              "Exception",
	"AggregateException":                "Exception",
	"ArgumentException":                 "SystemException",
	"ArgumentNullException":             "ArgumentException",
	"ArgumentOutOfRangeException":       "ArgumentException",
	"DuplicateWaitObjectException":      "ArgumentException",
	"ArithmeticException":               "SystemException",
	"DivideByZeroException":             "ArithmeticException",
	"OverflowException":                 "ArithmeticException",
	"NotFiniteNumberException":          "ArithmeticException",
	"NullReferenceException":            "SystemException",
	"InvalidOperationException":         "SystemException",
	"ObjectDisposedException":           "InvalidOperationException",
	"NotSupportedException":             "SystemException",
	"PlatformNotSupportedException":     "NotSupportedException",
	"NotImplementedException":           "SystemException",
	"FormatException":                   "SystemException",
	"IndexOutOfRangeException":          "SystemException",
	"InvalidCastException":              "SystemException",
	"KeyNotFoundException":              "SystemException",
	"OutOfMemoryException":              "SystemException",
	"StackOverflowException":            "SystemException",
	"TimeoutException":                  "SystemException",
	"UnauthorizedAccessException":       "SystemException",
	"OperationCanceledException":        "SystemException",
	"TaskCanceledException":             "OperationCanceledException",
	"IOException":                       "SystemException",
	"FileNotFoundException":             "IOException",
	"DirectoryNotFoundException":        "IOException",
	"EndOfStreamException":              "IOException",
	"PathTooLongException":              "IOException",
	"AccessViolationException":          "SystemException",
	"RankException":                     "SystemException",
	"ArrayTypeMismatchException":        "SystemException",
	"TypeInitializationException":       "SystemException",
	"InvalidProgramException":           "SystemException",
	"MissingMemberException":            "MemberAccessException",
	"MemberAccessException":             "SystemException",
	"MissingMethodException":            "MissingMemberException",
	"MissingFieldException":             "MissingMemberException",
	"SerializationException":            "SystemException",
	"HttpRequestException":              "Exception",
	"JsonException":                     "Exception",
	"String":                            "Object",
	"StringBuilder":                     "Object",
	"Attribute":                         "Object",
	"EventArgs":                         "Object",
	"Task":                              "Object",
	"ValueType":                         "Object",
}
