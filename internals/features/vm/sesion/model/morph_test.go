package model

import "testing"

func TestKindDe(t *testing.T) {
	cases := []struct {
		in   string
		want OwnerKind
	}{
		{"vm_proceso", OwnerProceso},
		{"vm_evento", OwnerEvento},
		{"VM_PROCESO", OwnerProceso},
		{"App\\Models\\VmProceso", OwnerProceso},
		{"App\\Models\\VmEvento", OwnerEvento},
		{"VmProceso", OwnerProceso},
		{"VmEvento", OwnerEvento},
		{"  vm_evento  ", OwnerEvento},
		{"Modulos\\Vm\\ProcesoLegacy", OwnerProceso},
		{"algo_con_evento_dentro", OwnerEvento},
		{"otra_cosa", OwnerDesconocido},
		{"", OwnerDesconocido},
	}
	for _, c := range cases {
		if got := KindDe(c.in); got != c.want {
			t.Errorf("KindDe(%q) = %v, quería %v", c.in, got, c.want)
		}
	}
}
