package main

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAdminCommands(t *testing.T) {
	Convey("Given the admin command tree", t, func() {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)

		Convey("It offers initdb, adduser and migrate", func() {
			names := []string{}
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			So(names, ShouldContain, "initdb")
			So(names, ShouldContain, "adduser")
			So(names, ShouldContain, "migrate")
		})

		Convey("adduser refuses to run without both flags", func() {
			root.SetArgs([]string{"adduser", "--name", "Ann"})
			err := root.Execute()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "both --name and --email are required")
		})

		Convey("migrate accepts a dsn flag", func() {
			cmd, _, err := root.Find([]string{"migrate"})
			So(err, ShouldBeNil)
			So(cmd.Flags().Lookup("dsn"), ShouldNotBeNil)
		})
	})
}
