package bitbucket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const browseURL = "https://bitbucket.example.com/projects/TEAM/repos/web-app/browse"

func TestParse(t *testing.T) {
	repo, err := Parse(browseURL)
	require.NoError(t, err)
	assert.Equal(t, Repo{Scheme: "https", Host: "bitbucket.example.com", Workspace: "TEAM", Name: "web-app"}, repo)

	for _, bad := range []string{
		"https://bitbucket.example.com/",
		"https://bitbucket.example.com/projects/TEAM",
		"https://bitbucket.example.com/projects/TEAM/repos",
		"://bad",
	} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestJenkinsURL(t *testing.T) {
	got, err := JenkinsURL(browseURL, "https://jenkins.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://jenkins.example.com/job/TEAM/job/web-app/view/default/builds", got)

	_, err = JenkinsURL(browseURL, " ")
	assert.Error(t, err)
	_, err = JenkinsURL("https://x/y", "https://jenkins")
	assert.Error(t, err)
}

func TestTrimBrowseAndCloneURL(t *testing.T) {
	assert.Equal(t, "https://bitbucket.example.com/projects/TEAM/repos/web-app", TrimBrowse(browseURL+"/"))
	assert.Equal(t, "https://bitbucket.example.com/projects/TEAM/repos/web-app", TrimBrowse(" https://bitbucket.example.com/projects/TEAM/repos/web-app "))

	assert.Equal(t, "https://bitbucket.example.com/scm/TEAM/web-app.git", CloneURL(browseURL))
	assert.Equal(t, "https://bitbucket.example.com/scm/TEAM/web-app.git", CloneURL("https://bitbucket.example.com/scm/TEAM/web-app.git"))
}

func TestProjectName(t *testing.T) {
	name, err := ProjectName(browseURL)
	require.NoError(t, err)
	assert.Equal(t, "web-app", name)

	name, err = ProjectName("https://bb/projects/T/repos/My-Service/browse")
	require.NoError(t, err)
	assert.Equal(t, "my-service", name)

	_, err = ProjectName("https://bb/nothing")
	assert.Error(t, err)
}

func TestReadURLs(t *testing.T) {
	in := strings.NewReader("# comment\n\n  " + browseURL + "  \nhttps://other\n")
	urls, err := ReadURLs(in)
	require.NoError(t, err)
	assert.Equal(t, []string{browseURL, "https://other"}, urls)
}
