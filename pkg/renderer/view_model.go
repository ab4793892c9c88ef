package renderer

// NumberInput 视图模型中的数值输入
// 程序只写入；渲染器在 Draw 时读取
type NumberInput struct {
	name  string
	value float64
}

// Name 返回输入名称
func (n *NumberInput) Name() string {
	return n.name
}

// SetValue 写入新值
func (n *NumberInput) SetValue(v float64) {
	n.value = v
}

// Value 返回当前值
func (n *NumberInput) Value() float64 {
	return n.value
}

// ViewModelInstance 绑定到画板的视图模型实例
type ViewModelInstance struct {
	name    string
	numbers map[string]*NumberInput
	order   []string
}

// NewViewModelInstance 按声明创建实例，输入取默认值
func NewViewModelInstance(spec *ViewModelSpec) *ViewModelInstance {
	vm := &ViewModelInstance{
		name:    spec.Name,
		numbers: make(map[string]*NumberInput, len(spec.Properties)),
	}
	for _, p := range spec.Properties {
		vm.numbers[p.Name] = &NumberInput{name: p.Name, value: p.Default}
		vm.order = append(vm.order, p.Name)
	}
	return vm
}

// Name 返回视图模型名称
func (vm *ViewModelInstance) Name() string {
	if vm == nil {
		return ""
	}
	return vm.name
}

// Number 按名称解析数值输入，不存在时返回 nil
func (vm *ViewModelInstance) Number(name string) *NumberInput {
	if vm == nil {
		return nil
	}
	return vm.numbers[name]
}

// NumberNames 返回声明顺序的输入名称
func (vm *ViewModelInstance) NumberNames() []string {
	return append([]string(nil), vm.order...)
}

// numberValue 读取输入值，不存在时返回 fallback
func (vm *ViewModelInstance) numberValue(name string, fallback float64) float64 {
	if n := vm.Number(name); n != nil {
		return n.value
	}
	return fallback
}
