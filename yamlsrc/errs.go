package yamlsrc

import (
	"errors"
	"fmt"
)

var (
	ErrParse      = errors.New("yaml parse error")
	ErrNoDocument = fmt.Errorf("%w: no document", ErrParse)
	ErrAlias      = fmt.Errorf("%w: alias to unknown anchor", ErrParse)
)
