package main

import "testing"

func TestSplitProjectBareName(t *testing.T) {
	group, name := splitProject("myproject")
	if group != "" || name != "myproject" {
		t.Fatalf("splitProject(%q) = (%q, %q), want (\"\", %q)", "myproject", group, name, "myproject")
	}
}

func TestSplitProjectSingleGroup(t *testing.T) {
	group, name := splitProject("group/project")
	if group != "group" || name != "project" {
		t.Fatalf("splitProject() = (%q, %q), want (%q, %q)", group, name, "group", "project")
	}
}

func TestSplitProjectNestedSubgroup(t *testing.T) {
	group, name := splitProject("group/subgroup/project")
	if group != "group/subgroup" || name != "project" {
		t.Fatalf("splitProject() = (%q, %q), want (%q, %q)", group, name, "group/subgroup", "project")
	}
}
