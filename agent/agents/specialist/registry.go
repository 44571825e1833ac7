package specialist

import (
	"errors"

	customerdatax "github.com/tanpawarit/a2a-support-desk/agent/agents/customerdata"
	contractx "github.com/tanpawarit/a2a-support-desk/agent/contract"
	promptx "github.com/tanpawarit/a2a-support-desk/agent/prompt"
)

type registryImpl struct {
	data    contractx.CustomerData
	support contractx.SupportSpecialist
}

func (r *registryImpl) Data() contractx.CustomerData {
	return r.data
}

func (r *registryImpl) Support() contractx.SupportSpecialist {
	return r.support
}

// NewRegistry wires both specialists on top of one tool caller. The support
// specialist reaches the data only through the data specialist.
func NewRegistry(tools contractx.ToolCaller) (contractx.Registry, error) {
	if tools == nil {
		return nil, errors.New("tool caller is required")
	}

	data := customerdatax.New(tools)
	return &registryImpl{
		data:    data,
		support: newSupport(data, promptx.LoadReplySet()),
	}, nil
}
