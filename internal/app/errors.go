package service

import "errors"

// ErrNoCourseTotalFile indicates the input directory holds no workbook with
// the course-total "00" prefix.
var ErrNoCourseTotalFile = errors.New("no course total file found")
