package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arc-language/typelayout/debugobj"
	"github.com/arc-language/typelayout/hirtype"
	"github.com/arc-language/typelayout/layout"
	"github.com/arc-language/typelayout/resolve"
	"github.com/arc-language/typelayout/target"
)

func newSizeofCmd(triple *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sizeof <type>",
		Short: "Print the size and alignment of a built-in type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.SetCurrent(*triple); err != nil {
				return err
			}
			ty, err := catalog(args[0])
			if err != nil {
				return err
			}

			oracle := layout.New(target.Current(), resolve.NewStatic())
			size, align, ok := oracle.SizeAlign(ty)
			if !ok {
				return fmt.Errorf("layout of %s is unknown under %s", args[0], *triple)
			}
			log.Info().Str("type", args[0]).Str("target", *triple).Msg("resolved layout")
			if size == layout.UnknownSize {
				fmt.Printf("%s: size=unsized align=%d\n", args[0], align)
			} else {
				fmt.Printf("%s: size=%d align=%d\n", args[0], size, align)
			}
			return nil
		},
	}
}

func newDumpTargetCmd(triple *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dump-target",
		Short: "Print the resolved target spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.SetCurrent(*triple); err != nil {
				return err
			}
			spec := target.Current()
			fmt.Printf("family=%s os=%s env=%s\n", spec.Family, spec.OSName, spec.EnvName)
			fmt.Printf("arch=%s pointer-bits=%d big-endian=%t\n",
				spec.Arch.Name, spec.Arch.PointerBits, spec.Arch.BigEndian)
			fmt.Printf("backend=%s emulate-i128=%t compiler=%s\n",
				spec.BackendC.Variant, spec.BackendC.EmulateI128, spec.BackendC.CCompiler)
			return nil
		},
	}
}

// newEmitObjectCmd writes a catalog type's layout to an ELF object via
// package debugobj, as a standalone symbol a linker or debugger could
// read back without re-running the oracle.
func newEmitObjectCmd(triple *string) *cobra.Command {
	return &cobra.Command{
		Use:   "emit-object <type> <output-path>",
		Short: "Write a type's layout to an ELF object's .typelayout section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.SetCurrent(*triple); err != nil {
				return err
			}
			ty, err := catalog(args[0])
			if err != nil {
				return err
			}

			oracle := layout.New(target.Current(), resolve.NewStatic())
			repr, ok := reprFor(oracle, ty)
			if !ok {
				return fmt.Errorf("%s has no standalone layout to emit (not a struct/enum/union)", args[0])
			}

			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := debugobj.Write(f, []debugobj.Entry{{Name: args[0], Repr: repr}}); err != nil {
				return err
			}
			log.Info().Str("type", args[0]).Str("path", args[1]).Msg("object written")
			return nil
		},
	}
}

// reprFor resolves the full TypeRepr for a nominal (struct/enum/union)
// type. Primitives and other non-nominal shapes have a size/align but
// no standalone TypeRepr of their own to emit.
func reprFor(oracle *layout.Oracle, ty hirtype.Ref) (*layout.TypeRepr, bool) {
	path, ok := ty.(hirtype.Path)
	if !ok {
		return nil, false
	}
	switch b := path.Binding.(type) {
	case hirtype.StructBinding:
		return oracle.StructRepr(b.Def)
	case hirtype.EnumBinding:
		return oracle.EnumRepr(b.Def)
	case hirtype.UnionBinding:
		return oracle.UnionRepr(b.Def)
	default:
		return nil, false
	}
}

func newExportTargetCmd(triple *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export-target <path>",
		Short: "Write the resolved target spec to a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.SetCurrent(*triple); err != nil {
				return err
			}
			if err := target.ExportCurrent(args[0], target.Current()); err != nil {
				return err
			}
			log.Info().Str("path", args[0]).Msg("target spec exported")
			return nil
		},
	}
}
