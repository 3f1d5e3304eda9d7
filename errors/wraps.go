package errors

func WrapNotFound(err error) error {
	return Wrap(ErrorRouteNotFound, err)
}

func WrapMethodNotAllowed(err error) error {
	return Wrap(ErrorMethodNotAllowed, err)
}

func WrapDuplicateRoute(err error) error {
	return Wrap(ErrorDuplicateRoute, err)
}

func WrapAmbiguousRoute(err error) error {
	return Wrap(ErrorAmbiguousRoute, err)
}

// IsNotFound reports a 404-class resolution failure. Parameter conversion
// failures collapse here too.
func IsNotFound(err error) bool {
	return IsKind(err, ErrorRouteNotFound.Key) || IsKind(err, ErrorParameterConversion.Key)
}

func IsMethodNotAllowed(err error) bool {
	return IsKind(err, ErrorMethodNotAllowed.Key)
}

func IsMalformedPath(err error) bool {
	return IsKind(err, ErrorMalformedPath.Key)
}

func IsDuplicateRoute(err error) bool {
	return IsKind(err, ErrorDuplicateRoute.Key)
}

func IsAmbiguousRoute(err error) bool {
	return IsKind(err, ErrorAmbiguousRoute.Key)
}
