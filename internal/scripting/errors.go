package scripting

import "fmt"

// ContractError reports a variant script that does not define a required hook.
type ContractError struct {
	Script string
	Hook   string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("scripting: %s does not define required hook %q", e.Script, e.Hook)
}
