package lmpinput

import (
	"io"
	"text/template"
)

// The dump line writes id and type ahead of the ten columns the dump
// parser reads: x y z vx vy vz fx fy fz etot.
const script = `# liquid argon, Lennard-Jones, NPT
units           metal
atom_style      atomic
boundary        p p p

lattice         fcc {{.LatticeConstant}}
region          box block 0 {{.Cells}} 0 {{.Cells}} 0 {{.Cells}}
create_box      1 box
create_atoms    1 box
mass            1 {{.Mass}}

pair_style      {{.PairStyle}}
pair_coeff      1 1 {{.Epsilon}} {{.Sigma}}
neighbor        {{.NeighborSkin}} bin
neigh_modify    every 1 delay 0 check yes

velocity        all create {{.Temperature}} {{.Seed}} mom yes rot yes dist gaussian
fix             integrate all npt temp {{.Temperature}} {{.Temperature}} {{.Tdamp}} iso {{.Pressure}} {{.Pressure}} {{.Pdamp}} tchain {{.Tchain}} pchain {{.Pchain}} mtk {{if .MTK}}yes{{else}}no{{end}}

compute         peatom all pe/atom
compute         keatom all ke/atom
variable        etot atom c_peatom+c_keatom

shell           mkdir {{.OutputFolder}}
dump            traj all custom {{.DumpEvery}} {{.OutputFolder}}/{{.DumpPattern}} id type x y z vx vy vz fx fy fz v_etot
dump_modify     traj sort id

thermo          {{.DumpEvery}}
thermo_style    custom step temp press pe ke etotal vol
timestep        {{.Timestep}}
run             {{.Steps}}
`

var scriptTmpl = template.Must(template.New("in.argon").Parse(script))

// Render writes the input script for p to w.
func Render(w io.Writer, p Params) error {
	return scriptTmpl.Execute(w, p)
}
